// Package settlement drives winning allocations through the post-clearing
// workflow: payment confirmation, share transfer confirmation and
// completion. Transitions are strictly forward and validated against the
// closed transition table in models; every successful transition emits a
// status-changed event for the external notifier.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"share-auction/internal/auctionerrors"
	"share-auction/internal/events"
	"share-auction/internal/models"
	"share-auction/internal/repository"
	"share-auction/utils"
)

// Action is an operator-facing settlement step.
type Action string

const (
	ActionConfirmPayment  Action = "confirm_payment"
	ActionConfirmTransfer Action = "confirm_transfer"
	ActionComplete        Action = "complete"
)

// actionTargets maps each operator action to the settlement status it moves
// an allocation into.
var actionTargets = map[Action]models.SettlementStatus{
	ActionConfirmPayment:  models.SettlementPaymentReceived,
	ActionConfirmTransfer: models.SettlementSharesTransferred,
	ActionComplete:        models.SettlementCompleted,
}

// BatchResult is the per-id breakdown of a bulk transition. A batch is never
// all-or-nothing: valid ids commit even when others fail.
type BatchResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

// StatusBreakdown aggregates allocations sharing one settlement status.
type StatusBreakdown struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Report is the read-only settlement dashboard for one auction. It is
// recomputed from the allocation rows on every call and is never the system
// of record.
type Report struct {
	AuctionID                   string                                      `json:"auction_id"`
	TotalAllocations            int64                                       `json:"total_allocations"`
	SuccessfulAllocations       int64                                       `json:"successful_allocations"`
	ByStatus                    map[models.SettlementStatus]StatusBreakdown `json:"by_status"`
	CompletionPercentage        decimal.Decimal                             `json:"completion_percentage"`
	PaymentCollectionPercentage decimal.Decimal                             `json:"payment_collection_percentage"`
	AllComplete                 bool                                        `json:"all_complete"`
}

// SettlementService defines the business logic for settlement transitions
// and reporting.
type SettlementService struct {
	repo   repository.AuctionDB
	events events.Publisher
	now    func() time.Time
}

// NewSettlementService creates a new SettlementService instance.
func NewSettlementService(repo repository.AuctionDB, publisher events.Publisher) *SettlementService {
	return &SettlementService{
		repo:   repo,
		events: publisher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ApplyTransition advances one allocation by the given action. The optional
// payment reference is only recorded on confirm_payment. The repository
// compare-and-set serializes doubled operator clicks on the same allocation:
// the second click fails with an InvalidTransitionError instead of applying
// twice.
func (s *SettlementService) ApplyTransition(ctx context.Context, allocationID string, action Action, paymentRef string) (models.Allocation, error) {
	target, ok := actionTargets[action]
	if !ok {
		return models.Allocation{}, fmt.Errorf("service: %w - unknown action %q", auctionerrors.ErrInvalidSettlementTransition, action)
	}
	if allocationID == "" {
		return models.Allocation{}, fmt.Errorf("service: %w - empty allocation id", auctionerrors.ErrAllocationNotFound)
	}

	alloc, err := s.repo.GetAllocation(ctx, allocationID)
	if err != nil {
		return models.Allocation{}, fmt.Errorf("service: failed to get allocation %s: %w", allocationID, err)
	}
	return s.apply(ctx, alloc, target, action, paymentRef)
}

func (s *SettlementService) apply(ctx context.Context, alloc models.Allocation, target models.SettlementStatus, action Action, paymentRef string) (models.Allocation, error) {
	if !alloc.SettlementStatus.CanTransitionTo(target) {
		return models.Allocation{}, &auctionerrors.InvalidTransitionError{
			AllocationID: alloc.AllocationID,
			Current:      string(alloc.SettlementStatus),
			Requested:    string(target),
		}
	}

	var ref *string
	if action == ActionConfirmPayment && paymentRef != "" {
		ref = &paymentRef
	}

	now := s.now()
	updated, err := s.repo.UpdateSettlement(ctx, alloc.AllocationID, alloc.SettlementStatus, target, ref, now)
	if err != nil {
		return models.Allocation{}, fmt.Errorf("service: failed to update settlement for allocation %s: %w", alloc.AllocationID, err)
	}

	s.emitTransition(ctx, alloc.SettlementStatus, updated, now)
	if target == models.SettlementCompleted {
		s.emitAllCompletedIfDone(ctx, updated.AuctionID, now)
	}
	return updated, nil
}

// emitTransition publishes the bidder-facing status change and, on share
// transfer, the confirmation consumed by the external cap-table ledger.
// Publish failures are logged and ignored: the committed transition is the
// source of truth.
func (s *SettlementService) emitTransition(ctx context.Context, old models.SettlementStatus, alloc models.Allocation, at time.Time) {
	changed := events.SettlementStatusChangedEvent{
		AllocationID: alloc.AllocationID,
		AuctionID:    alloc.AuctionID,
		BidderID:     alloc.BidderID,
		OldStatus:    string(old),
		NewStatus:    string(alloc.SettlementStatus),
		ChangedAt:    at.Format(time.RFC3339),
	}
	if alloc.PaymentReference != nil {
		changed.PaymentReference = *alloc.PaymentReference
	}
	if err := s.events.PublishSettlementStatusChanged(ctx, changed); err != nil {
		utils.Warn("settlement status event publish failed", map[string]any{
			"allocation_id": alloc.AllocationID,
			"error":         err.Error(),
		})
	}

	if alloc.SettlementStatus == models.SettlementSharesTransferred {
		confirmation := events.SharesTransferConfirmation{
			AuctionID:     alloc.AuctionID,
			AllocationID:  alloc.AllocationID,
			BidderID:      alloc.BidderID,
			Quantity:      alloc.AllocatedQuantity,
			ClearingPrice: alloc.ClearingPrice.String(),
			TransferredAt: at.Format(time.RFC3339),
		}
		if err := s.events.PublishSharesTransferConfirmed(ctx, confirmation); err != nil {
			utils.Warn("share transfer confirmation publish failed", map[string]any{
				"allocation_id": alloc.AllocationID,
				"error":         err.Error(),
			})
		}
	}
}

// emitAllCompletedIfDone publishes the operator summary once every winning
// allocation of the auction has completed.
func (s *SettlementService) emitAllCompletedIfDone(ctx context.Context, auctionID string, at time.Time) {
	allocs, err := s.repo.GetAllocationsByAuction(ctx, auctionID)
	if err != nil {
		utils.Warn("could not check settlement completion", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	var settled int64
	total := decimal.Zero
	for _, a := range allocs {
		if a.SettlementStatus == models.SettlementNone {
			continue // rejected at clearing, nothing to settle
		}
		if a.SettlementStatus != models.SettlementCompleted {
			return
		}
		settled++
		total = total.Add(a.TotalAmount)
	}
	if settled == 0 {
		return
	}

	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		utils.Warn("could not load auction for completion summary", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}
	event := events.AllSettlementsCompletedEvent{
		AuctionID:    auctionID,
		CompanyID:    auction.CompanyID,
		TotalSettled: settled,
		TotalAmount:  total.String(),
		CompletedAt:  at.Format(time.RFC3339),
	}
	if err := s.events.PublishAllSettlementsCompleted(ctx, event); err != nil {
		utils.Warn("all settlements completed event publish failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	}
}

// ApplyBulk applies one action to a batch of allocation ids. Each id is
// validated and committed independently; the result reports which ids
// succeeded and why the rest failed. Ids outside the named auction fail
// without being touched.
func (s *SettlementService) ApplyBulk(ctx context.Context, auctionID string, allocationIDs []string, action Action, paymentRef string) (BatchResult, error) {
	if auctionID == "" {
		return BatchResult{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	if len(allocationIDs) == 0 {
		return BatchResult{}, fmt.Errorf("service: %w - no allocation ids given", auctionerrors.ErrEmptyBatch)
	}
	target, ok := actionTargets[action]
	if !ok {
		return BatchResult{}, fmt.Errorf("service: %w - unknown action %q", auctionerrors.ErrInvalidSettlementTransition, action)
	}

	result := BatchResult{
		Succeeded: make([]string, 0, len(allocationIDs)),
		Failed:    make(map[string]string),
	}
	for _, id := range allocationIDs {
		if id == "" {
			result.Failed[id] = "empty allocation id"
			continue
		}
		alloc, err := s.repo.GetAllocation(ctx, id)
		if err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		if alloc.AuctionID != auctionID {
			result.Failed[id] = fmt.Sprintf("allocation %s does not belong to auction %s", id, auctionID)
			continue
		}
		if _, err := s.apply(ctx, alloc, target, action, paymentRef); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	utils.Info("bulk settlement transition applied", map[string]any{
		"auction_id": auctionID,
		"action":     string(action),
		"succeeded":  len(result.Succeeded),
		"failed":     len(result.Failed),
	})
	return result, nil
}

// Report aggregates an auction's allocations by settlement status. Rejected
// allocations count toward TotalAllocations only; the percentages are over
// successful (winning) allocations.
func (s *SettlementService) Report(ctx context.Context, auctionID string) (Report, error) {
	if auctionID == "" {
		return Report{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	allocs, err := s.repo.GetAllocationsByAuction(ctx, auctionID)
	if err != nil {
		return Report{}, fmt.Errorf("service: failed to get allocations for auction %s: %w", auctionID, err)
	}

	report := Report{
		AuctionID:                   auctionID,
		ByStatus:                    make(map[models.SettlementStatus]StatusBreakdown),
		CompletionPercentage:        decimal.Zero,
		PaymentCollectionPercentage: decimal.Zero,
	}
	var completed, collected int64
	for _, a := range allocs {
		report.TotalAllocations++
		if a.SettlementStatus == models.SettlementNone {
			continue
		}
		report.SuccessfulAllocations++
		breakdown := report.ByStatus[a.SettlementStatus]
		breakdown.Count++
		breakdown.Amount = breakdown.Amount.Add(a.TotalAmount)
		report.ByStatus[a.SettlementStatus] = breakdown

		switch a.SettlementStatus {
		case models.SettlementCompleted:
			completed++
			collected++
		case models.SettlementPaymentReceived, models.SettlementSharesTransferred:
			collected++
		}
	}

	if report.SuccessfulAllocations > 0 {
		successful := decimal.NewFromInt(report.SuccessfulAllocations)
		report.CompletionPercentage = decimal.NewFromInt(completed).Mul(decimal.NewFromInt(100)).DivRound(successful, 2)
		report.PaymentCollectionPercentage = decimal.NewFromInt(collected).Mul(decimal.NewFromInt(100)).DivRound(successful, 2)
		report.AllComplete = completed == report.SuccessfulAllocations
	}
	return report, nil
}
