package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionDraft          AuctionStatus = "draft"
	AuctionCollectingBids AuctionStatus = "collecting_bids"
	AuctionCompleted      AuctionStatus = "completed"
	AuctionCancelled      AuctionStatus = "cancelled"
)

// Cancellable reports whether the auction may still be cancelled. Completed
// auctions are immutable history and cancellation is itself terminal.
func (s AuctionStatus) Cancellable() bool {
	return s == AuctionDraft || s == AuctionCollectingBids
}

// AllocationType classifies how a bid fared against the clearing price.
type AllocationType string

const (
	AllocationFull     AllocationType = "full"
	AllocationProRata  AllocationType = "pro_rata"
	AllocationRejected AllocationType = "rejected"
)

// SettlementStatus tracks post-clearing progress of a winning allocation.
// Rejected (zero-quantity) allocations never enter settlement and keep the
// empty status.
type SettlementStatus string

const (
	SettlementNone              SettlementStatus = ""
	SettlementPendingPayment    SettlementStatus = "pending_payment"
	SettlementPaymentReceived   SettlementStatus = "payment_received"
	SettlementSharesTransferred SettlementStatus = "shares_transferred"
	SettlementCompleted         SettlementStatus = "completed"
)

// settlementNext is the closed transition table. Settlement only ever moves
// forward one step at a time; anything not listed here is illegal.
var settlementNext = map[SettlementStatus]SettlementStatus{
	SettlementPendingPayment:    SettlementPaymentReceived,
	SettlementPaymentReceived:   SettlementSharesTransferred,
	SettlementSharesTransferred: SettlementCompleted,
}

// Next returns the only status reachable from s, if any.
func (s SettlementStatus) Next() (SettlementStatus, bool) {
	next, ok := settlementNext[s]
	return next, ok
}

// CanTransitionTo reports whether moving from s to target is a legal step.
func (s SettlementStatus) CanTransitionTo(target SettlementStatus) bool {
	next, ok := settlementNext[s]
	return ok && next == target
}

// Terminal reports whether no further settlement transition is possible.
func (s SettlementStatus) Terminal() bool {
	_, ok := settlementNext[s]
	return !ok
}

// Auction represents one share offering by a company.
type Auction struct {
	AuctionID            string           `json:"auction_id"`
	CompanyID            string           `json:"company_id"`
	SharesCount          int64            `json:"shares_count"`
	MaxPrice             decimal.Decimal  `json:"max_price"`
	MinPrice             decimal.Decimal  `json:"min_price"`
	Status               AuctionStatus    `json:"status"`
	BidCollectionEndTime *time.Time       `json:"bid_collection_end_time,omitempty"`
	ClearingPrice        *decimal.Decimal `json:"clearing_price,omitempty"`
	TotalDemand          *int64           `json:"total_demand,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// Bid is a bidder's sealed offer: how many shares they want and the most
// they will pay per share. At most one active bid exists per (auction,
// bidder); resubmission replaces it in place.
type Bid struct {
	BidID             string          `json:"bid_id"`
	AuctionID         string          `json:"auction_id"`
	BidderID          string          `json:"bidder_id"`
	QuantityRequested int64           `json:"quantity_requested"`
	MaxPrice          decimal.Decimal `json:"max_price"`
	BidTime           time.Time       `json:"bid_time"`
	Active            bool            `json:"active"`
}

// ClearingResult is the immutable record of one clearing run. SharesOffered
// and PriceFloor snapshot the inputs so the run can be reproduced from the
// stored bids.
type ClearingResult struct {
	AuctionID       string          `json:"auction_id"`
	ClearingPrice   decimal.Decimal `json:"clearing_price"`
	TotalBidsCount  int64           `json:"total_bids_count"`
	TotalDemand     int64           `json:"total_demand"`
	SharesOffered   int64           `json:"shares_offered"`
	PriceFloor      decimal.Decimal `json:"price_floor"`
	SharesAllocated int64           `json:"shares_allocated"`
	SharesRemaining int64           `json:"shares_remaining"`
	ProRataApplied  bool            `json:"pro_rata_applied"`
	ClearedAt       time.Time       `json:"cleared_at"`
}

// Allocation records what one bid received at clearing time. The quantity,
// amount and type fields are write-once; only the settlement fields change
// afterwards.
type Allocation struct {
	AllocationID        string           `json:"allocation_id"`
	AuctionID           string           `json:"auction_id"`
	BidderID            string           `json:"bidder_id"`
	OriginalQuantity    int64            `json:"original_quantity"`
	AllocatedQuantity   int64            `json:"allocated_quantity"`
	ClearingPrice       decimal.Decimal  `json:"clearing_price"`
	TotalAmount         decimal.Decimal  `json:"total_amount"`
	AllocationType      AllocationType   `json:"allocation_type"`
	ProRataPercentage   *decimal.Decimal `json:"pro_rata_percentage,omitempty"`
	SettlementStatus    SettlementStatus `json:"settlement_status,omitempty"`
	PaymentReference    *string          `json:"payment_reference,omitempty"`
	PaymentReceivedAt   *time.Time       `json:"payment_received_at,omitempty"`
	SharesTransferredAt *time.Time       `json:"shares_transferred_at,omitempty"`
	CompletedAt         *time.Time       `json:"completed_at,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}
