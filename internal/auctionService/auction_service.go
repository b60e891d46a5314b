// Package auction implements the auction lifecycle, bid intake and the
// clearing orchestrator. It guards when the clearing calculator may run,
// persists its output atomically, and emits the auction-cleared event.
package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"share-auction/internal/auctionerrors"
	"share-auction/internal/clearing"
	"share-auction/internal/events"
	"share-auction/internal/models"
	"share-auction/internal/repository"
	"share-auction/utils"
)

// AuctionService defines the business logic for the auction lifecycle and
// clearing.
type AuctionService struct {
	repo   repository.AuctionDB
	events events.Publisher
	now    func() time.Time
}

// NewAuctionService creates a new AuctionService instance.
func NewAuctionService(repo repository.AuctionDB, publisher events.Publisher) *AuctionService {
	return &AuctionService{
		repo:   repo,
		events: publisher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateAuction validates the offering parameters and stores a draft auction.
func (s *AuctionService) CreateAuction(ctx context.Context, companyID string, sharesCount int64, maxPrice, minPrice decimal.Decimal) (models.Auction, error) {
	if companyID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing company id", auctionerrors.ErrInvalidAuctionParameters)
	}
	if sharesCount <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - shares count %d must be positive", auctionerrors.ErrInvalidAuctionParameters, sharesCount)
	}
	if minPrice.LessThanOrEqual(decimal.Zero) {
		return models.Auction{}, fmt.Errorf("service: %w - price floor %s must be positive", auctionerrors.ErrInvalidAuctionParameters, minPrice)
	}
	if maxPrice.LessThanOrEqual(minPrice) {
		return models.Auction{}, fmt.Errorf("service: %w - price ceiling %s must exceed floor %s", auctionerrors.ErrInvalidAuctionParameters, maxPrice, minPrice)
	}

	auction := models.Auction{
		AuctionID:   utils.GenerateID(),
		CompanyID:   companyID,
		SharesCount: sharesCount,
		MaxPrice:    maxPrice,
		MinPrice:    minPrice,
		Status:      models.AuctionDraft,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for company %s: %w", companyID, err)
	}
	return auction, nil
}

// GetAuction returns one auction by id.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// StartAuction opens the bid collection window: the auction moves from draft
// to collecting_bids and the window end is fixed at now + window.
func (s *AuctionService) StartAuction(ctx context.Context, auctionID string, window time.Duration) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	if window <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - collection window %s must be positive", auctionerrors.ErrInvalidAuctionParameters, window)
	}

	end := s.now().Add(window)
	if err := s.repo.UpdateAuctionStatus(ctx, auctionID, models.AuctionDraft, models.AuctionCollectingBids, &end); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to start auction %s: %w", auctionID, err)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load started auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// CancelAuction cancels an auction that has not completed. Cancellation is a
// status, not a delete; bids stay on record.
func (s *AuctionService) CancelAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	if !auction.Status.Cancellable() {
		return models.Auction{}, fmt.Errorf("service: %w - auction %s is %q", auctionerrors.ErrInvalidStatusChange, auctionID, auction.Status)
	}
	if err := s.repo.UpdateAuctionStatus(ctx, auctionID, auction.Status, models.AuctionCancelled, nil); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to cancel auction %s: %w", auctionID, err)
	}
	auction.Status = models.AuctionCancelled
	return auction, nil
}

// SubmitBid validates and records a bidder's sealed bid. A later submission
// by the same bidder supersedes the earlier one in place.
func (s *AuctionService) SubmitBid(ctx context.Context, auctionID, bidderID string, quantity int64, maxPrice decimal.Decimal) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auction id or bidder id", auctionerrors.ErrBidOutOfRange)
	}
	if quantity <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - quantity %d must be positive", auctionerrors.ErrBidOutOfRange, quantity)
	}

	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	if auction.Status != models.AuctionCollectingBids {
		return models.Bid{}, fmt.Errorf("service: %w - auction %s is %q", auctionerrors.ErrAuctionNotAcceptingBids, auctionID, auction.Status)
	}
	now := s.now()
	if auction.BidCollectionEndTime == nil || !now.Before(*auction.BidCollectionEndTime) {
		return models.Bid{}, fmt.Errorf("service: %w - collection window for auction %s closed", auctionerrors.ErrAuctionNotAcceptingBids, auctionID)
	}
	if maxPrice.LessThan(auction.MinPrice) {
		return models.Bid{}, fmt.Errorf("service: %w - bid price %s below auction minimum %s", auctionerrors.ErrBidOutOfRange, maxPrice, auction.MinPrice)
	}
	if maxPrice.GreaterThan(auction.MaxPrice) {
		return models.Bid{}, fmt.Errorf("service: %w - bid price %s above auction maximum %s", auctionerrors.ErrBidOutOfRange, maxPrice, auction.MaxPrice)
	}

	bid := models.Bid{
		BidID:             utils.GenerateID(),
		AuctionID:         auctionID,
		BidderID:          bidderID,
		QuantityRequested: quantity,
		MaxPrice:          maxPrice,
		BidTime:           now,
		Active:            true,
	}
	if err := s.repo.UpsertActiveBid(ctx, bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by bidder %s: %w", auctionID, bidderID, err)
	}
	return bid, nil
}

// ListBids returns the auction's active bids.
func (s *AuctionService) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	bids, err := s.repo.GetActiveBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// TriggerClearing runs the clearing calculator against the auction's active
// bids and persists the outcome. It may be invoked by the scheduled
// window-close check or by an operator; force bypasses the window check only
// (never the idempotency guard). Racing triggers are safe: the persistence
// layer accepts exactly one clearing per auction and the loser observes
// ErrAlreadyCleared.
func (s *AuctionService) TriggerClearing(ctx context.Context, auctionID string, force bool) (models.ClearingResult, []models.Allocation, error) {
	if auctionID == "" {
		return models.ClearingResult{}, nil, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}

	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.ClearingResult{}, nil, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	switch auction.Status {
	case models.AuctionCollectingBids:
		// proceed
	case models.AuctionCompleted:
		return models.ClearingResult{}, nil, fmt.Errorf("service: %w - auction %s", auctionerrors.ErrAlreadyCleared, auctionID)
	default:
		return models.ClearingResult{}, nil, fmt.Errorf("service: %w - auction %s is %q", auctionerrors.ErrClearingNotAllowed, auctionID, auction.Status)
	}

	now := s.now()
	if !force && (auction.BidCollectionEndTime == nil || now.Before(*auction.BidCollectionEndTime)) {
		return models.ClearingResult{}, nil, fmt.Errorf("service: %w - collection window for auction %s still open", auctionerrors.ErrClearingNotAllowed, auctionID)
	}

	bids, err := s.repo.GetActiveBids(ctx, auctionID)
	if err != nil {
		return models.ClearingResult{}, nil, fmt.Errorf("service: failed to load bids for auction %s: %w", auctionID, err)
	}
	inputs := make([]clearing.BidInput, 0, len(bids))
	for _, b := range bids {
		inputs = append(inputs, clearing.BidInput{
			BidderID: b.BidderID,
			Quantity: b.QuantityRequested,
			MaxPrice: b.MaxPrice,
			BidTime:  b.BidTime,
		})
	}

	calc, err := clearing.Clear(inputs, clearing.Params{Supply: auction.SharesCount, PriceFloor: auction.MinPrice})
	if err != nil {
		return models.ClearingResult{}, nil, fmt.Errorf("service: clearing failed for auction %s: %w", auctionID, err)
	}

	result := models.ClearingResult{
		AuctionID:       auctionID,
		ClearingPrice:   calc.ClearingPrice,
		TotalBidsCount:  calc.TotalBidsCount,
		TotalDemand:     calc.TotalDemand,
		SharesOffered:   auction.SharesCount,
		PriceFloor:      auction.MinPrice,
		SharesAllocated: calc.SharesAllocated,
		SharesRemaining: calc.SharesRemaining,
		ProRataApplied:  calc.ProRataApplied,
		ClearedAt:       now,
	}
	allocations := make([]models.Allocation, 0, len(calc.Outcomes))
	var winners int64
	for _, out := range calc.Outcomes {
		alloc := models.Allocation{
			AllocationID:      utils.GenerateID(),
			AuctionID:         auctionID,
			BidderID:          out.BidderID,
			OriginalQuantity:  out.Requested,
			AllocatedQuantity: out.Allocated,
			ClearingPrice:     calc.ClearingPrice,
			TotalAmount:       calc.ClearingPrice.Mul(decimal.NewFromInt(out.Allocated)),
			AllocationType:    out.Type,
			ProRataPercentage: out.ProRataPercentage,
			CreatedAt:         now,
		}
		if out.Allocated > 0 {
			alloc.SettlementStatus = models.SettlementPendingPayment
			winners++
		}
		allocations = append(allocations, alloc)
	}

	if err := s.repo.SaveClearing(ctx, result, allocations); err != nil {
		if errors.Is(err, auctionerrors.ErrAlreadyCleared) {
			// Lost the race to another trigger: a normal, reportable outcome.
			return models.ClearingResult{}, nil, fmt.Errorf("service: %w - auction %s", auctionerrors.ErrAlreadyCleared, auctionID)
		}
		return models.ClearingResult{}, nil, fmt.Errorf("service: failed to persist clearing for auction %s: %w", auctionID, err)
	}

	// Notification is best-effort; the persisted clearing stays authoritative.
	event := events.AuctionClearedEvent{
		AuctionID:       auctionID,
		CompanyID:       auction.CompanyID,
		ClearingPrice:   calc.ClearingPrice.String(),
		TotalBidsCount:  calc.TotalBidsCount,
		TotalDemand:     calc.TotalDemand,
		SharesAllocated: calc.SharesAllocated,
		SharesRemaining: calc.SharesRemaining,
		ProRataApplied:  calc.ProRataApplied,
		WinnerCount:     winners,
		ClearedAt:       now.Format(time.RFC3339),
	}
	if err := s.events.PublishAuctionCleared(ctx, event); err != nil {
		utils.Warn("auction cleared event publish failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
	}

	utils.Info("auction cleared", map[string]any{
		"auction_id":       auctionID,
		"clearing_price":   calc.ClearingPrice.String(),
		"total_bids":       calc.TotalBidsCount,
		"shares_allocated": calc.SharesAllocated,
		"pro_rata_applied": calc.ProRataApplied,
	})
	return result, allocations, nil
}

// GetClearingResult returns the persisted clearing result for an auction.
func (s *AuctionService) GetClearingResult(ctx context.Context, auctionID string) (models.ClearingResult, error) {
	if auctionID == "" {
		return models.ClearingResult{}, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	result, err := s.repo.GetClearingResult(ctx, auctionID)
	if err != nil {
		return models.ClearingResult{}, fmt.Errorf("service: failed to get clearing result for auction %s: %w", auctionID, err)
	}
	return result, nil
}

// ListAllocations returns the auction's allocations in clearing order.
func (s *AuctionService) ListAllocations(ctx context.Context, auctionID string) ([]models.Allocation, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction id", auctionerrors.ErrInvalidAuctionParameters)
	}
	allocs, err := s.repo.GetAllocationsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get allocations for auction %s: %w", auctionID, err)
	}
	return allocs, nil
}
