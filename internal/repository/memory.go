package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"share-auction/internal/auctionerrors"
	model "share-auction/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// All compare-and-set guards run under a single mutex, which gives the same
// atomicity the SQL implementation gets from transactions and unique keys.
type MemoryRepo struct {
	mu            sync.RWMutex
	auctions      map[string]model.Auction
	activeBids    map[string]map[string]model.Bid // auctionID -> bidderID -> active bid
	results       map[string]model.ClearingResult // auctionID -> result
	allocations   map[string]model.Allocation     // allocationID -> allocation
	auctionAllocs map[string][]string             // auctionID -> allocation IDs in clearing order
}

// NewMemoryRepo creates a new in-memory repository instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[string]model.Auction),
		activeBids:    make(map[string]map[string]model.Bid),
		results:       make(map[string]model.ClearingResult),
		allocations:   make(map[string]model.Allocation),
		auctionAllocs: make(map[string][]string),
	}
}

// CreateAuction stores a new auction record.
func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: auction id already exists", auction.AuctionID)
	}
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns the auction with the given id.
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// UpdateAuctionStatus applies a status change only if the auction is still in
// the expected status.
func (r *MemoryRepo) UpdateAuctionStatus(_ context.Context, auctionID string, from, to model.AuctionStatus, bidCollectionEnd *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update auction %s status: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if auction.Status != from {
		return fmt.Errorf("update auction %s status: expected %q but auction is %q: %w",
			auctionID, from, auction.Status, auctionerrors.ErrInvalidStatusChange)
	}
	auction.Status = to
	if bidCollectionEnd != nil {
		end := *bidCollectionEnd
		auction.BidCollectionEndTime = &end
	}
	r.auctions[auctionID] = auction
	return nil
}

// UpsertActiveBid records the bidder's bid, superseding any earlier active
// bid by the same bidder in place.
func (r *MemoryRepo) UpsertActiveBid(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	byBidder, ok := r.activeBids[bid.AuctionID]
	if !ok {
		byBidder = make(map[string]model.Bid)
		r.activeBids[bid.AuctionID] = byBidder
	}
	byBidder[bid.BidderID] = bid
	return nil
}

// GetActiveBids returns all active bids for an auction ordered by bid time,
// then bidder id, so callers see a deterministic snapshot.
func (r *MemoryRepo) GetActiveBids(_ context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	bids := make([]model.Bid, 0, len(r.activeBids[auctionID]))
	for _, b := range r.activeBids[auctionID] {
		bids = append(bids, b)
	}
	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].BidTime.Equal(bids[j].BidTime) {
			return bids[i].BidTime.Before(bids[j].BidTime)
		}
		return bids[i].BidderID < bids[j].BidderID
	})
	return bids, nil
}

// SaveClearing persists the result, the allocations and the completed status
// under one lock. A second call for the same auction is a guarded no-op
// failing with ErrAlreadyCleared.
func (r *MemoryRepo) SaveClearing(_ context.Context, result model.ClearingResult, allocations []model.Allocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[result.AuctionID]
	if !ok {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if _, ok := r.results[result.AuctionID]; ok {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, auctionerrors.ErrAlreadyCleared)
	}
	if auction.Status != model.AuctionCollectingBids {
		return fmt.Errorf("save clearing for auction %s: auction is %q: %w",
			result.AuctionID, auction.Status, auctionerrors.ErrInvalidStatusChange)
	}

	r.results[result.AuctionID] = result
	ids := make([]string, 0, len(allocations))
	for _, alloc := range allocations {
		r.allocations[alloc.AllocationID] = alloc
		ids = append(ids, alloc.AllocationID)
	}
	r.auctionAllocs[result.AuctionID] = ids

	auction.Status = model.AuctionCompleted
	price := result.ClearingPrice
	demand := result.TotalDemand
	auction.ClearingPrice = &price
	auction.TotalDemand = &demand
	r.auctions[result.AuctionID] = auction
	return nil
}

// GetClearingResult returns the persisted clearing result for an auction.
func (r *MemoryRepo) GetClearingResult(_ context.Context, auctionID string) (model.ClearingResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[auctionID]
	if !ok {
		return model.ClearingResult{}, fmt.Errorf("get clearing result for auction %s: %w", auctionID, auctionerrors.ErrClearingResultNotFound)
	}
	return result, nil
}

// GetAllocation returns a single allocation by id.
func (r *MemoryRepo) GetAllocation(_ context.Context, allocationID string) (model.Allocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alloc, ok := r.allocations[allocationID]
	if !ok {
		return model.Allocation{}, fmt.Errorf("get allocation %s: %w", allocationID, auctionerrors.ErrAllocationNotFound)
	}
	return alloc, nil
}

// GetAllocationsByAuction returns an auction's allocations in clearing order.
func (r *MemoryRepo) GetAllocationsByAuction(_ context.Context, auctionID string) ([]model.Allocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get allocations for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	ids := r.auctionAllocs[auctionID]
	allocs := make([]model.Allocation, 0, len(ids))
	for _, id := range ids {
		allocs = append(allocs, r.allocations[id])
	}
	return allocs, nil
}

// UpdateSettlement advances the settlement status if and only if the
// allocation is still in the expected status, so a doubled operator action
// cannot apply twice.
func (r *MemoryRepo) UpdateSettlement(_ context.Context, allocationID string, from, to model.SettlementStatus, paymentRef *string, at time.Time) (model.Allocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alloc, ok := r.allocations[allocationID]
	if !ok {
		return model.Allocation{}, fmt.Errorf("update settlement for allocation %s: %w", allocationID, auctionerrors.ErrAllocationNotFound)
	}
	if alloc.SettlementStatus != from {
		return model.Allocation{}, &auctionerrors.InvalidTransitionError{
			AllocationID: allocationID,
			Current:      string(alloc.SettlementStatus),
			Requested:    string(to),
		}
	}

	alloc.SettlementStatus = to
	if paymentRef != nil {
		ref := *paymentRef
		alloc.PaymentReference = &ref
	}
	ts := at
	switch to {
	case model.SettlementPaymentReceived:
		alloc.PaymentReceivedAt = &ts
	case model.SettlementSharesTransferred:
		alloc.SharesTransferredAt = &ts
	case model.SettlementCompleted:
		alloc.CompletedAt = &ts
	}
	r.allocations[allocationID] = alloc
	return alloc, nil
}
