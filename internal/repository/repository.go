package repository

import (
	"context"
	"time"

	model "share-auction/internal/models"
)

// AuctionDB defines the storage interface for the auction engine. The
// clearing idempotency guard and the settlement compare-and-set live here so
// that concurrent triggers race safely at the persistence layer instead of
// relying on in-process locks.
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)

	// UpdateAuctionStatus moves an auction from one status to another as a
	// compare-and-set: it fails with ErrInvalidStatusChange when the auction
	// is no longer in the expected status. A non-nil bidCollectionEnd is
	// written alongside the status (used when bidding opens).
	UpdateAuctionStatus(ctx context.Context, auctionID string, from, to model.AuctionStatus, bidCollectionEnd *time.Time) error

	// UpsertActiveBid stores the bidder's active bid, replacing any earlier
	// bid by the same bidder on the same auction in place (latest write wins).
	UpsertActiveBid(ctx context.Context, bid model.Bid) error
	GetActiveBids(ctx context.Context, auctionID string) ([]model.Bid, error)

	// SaveClearing persists the clearing result, all allocation rows and the
	// auction's completed status as a single atomic unit. It fails with
	// ErrAlreadyCleared when a result already exists for the auction and
	// changes nothing in that case.
	SaveClearing(ctx context.Context, result model.ClearingResult, allocations []model.Allocation) error
	GetClearingResult(ctx context.Context, auctionID string) (model.ClearingResult, error)

	GetAllocation(ctx context.Context, allocationID string) (model.Allocation, error)
	GetAllocationsByAuction(ctx context.Context, auctionID string) ([]model.Allocation, error)

	// UpdateSettlement advances an allocation's settlement status as a
	// compare-and-set on the expected current status, recording the
	// transition timestamp and, when non-nil, the payment reference. It
	// fails with an InvalidTransitionError if the allocation moved
	// concurrently.
	UpdateSettlement(ctx context.Context, allocationID string, from, to model.SettlementStatus, paymentRef *string, at time.Time) (model.Allocation, error)
}
