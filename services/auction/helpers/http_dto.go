package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "share-auction/internal/models"
)

// Request/Response DTOs. Prices travel as strings so no precision is lost to
// JSON float parsing.
type CreateAuctionRequest struct {
	CompanyID   string `json:"company_id" binding:"required"`
	SharesCount int64  `json:"shares_count" binding:"required,gt=0"`
	MaxPrice    string `json:"max_price" binding:"required"`
	MinPrice    string `json:"min_price" binding:"required"`
}

type StartAuctionRequest struct {
	DurationHours int `json:"duration_hours" binding:"omitempty,gt=0"`
}

type PlaceBidRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
	MaxPrice string `json:"max_price" binding:"required"`
}

type TriggerClearingRequest struct {
	Force bool `json:"force"`
}

type AuctionResponse struct {
	AuctionID            string  `json:"auction_id"`
	CompanyID            string  `json:"company_id"`
	SharesCount          int64   `json:"shares_count"`
	MaxPrice             string  `json:"max_price"`
	MinPrice             string  `json:"min_price"`
	Status               string  `json:"status"`
	BidCollectionEndTime *string `json:"bid_collection_end_time,omitempty"`
	ClearingPrice        *string `json:"clearing_price,omitempty"`
	TotalDemand          *int64  `json:"total_demand,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

type BidResponse struct {
	BidID             string `json:"bid_id"`
	AuctionID         string `json:"auction_id"`
	BidderID          string `json:"bidder_id"`
	QuantityRequested int64  `json:"quantity_requested"`
	MaxPrice          string `json:"max_price"`
	BidTime           string `json:"bid_time"`
}

type ClearingResultResponse struct {
	AuctionID       string `json:"auction_id"`
	ClearingPrice   string `json:"clearing_price"`
	TotalBidsCount  int64  `json:"total_bids_count"`
	TotalDemand     int64  `json:"total_demand"`
	SharesOffered   int64  `json:"shares_offered"`
	PriceFloor      string `json:"price_floor"`
	SharesAllocated int64  `json:"shares_allocated"`
	SharesRemaining int64  `json:"shares_remaining"`
	ProRataApplied  bool   `json:"pro_rata_applied"`
	ClearedAt       string `json:"cleared_at"`
}

type AllocationResponse struct {
	AllocationID        string  `json:"allocation_id"`
	AuctionID           string  `json:"auction_id"`
	BidderID            string  `json:"bidder_id"`
	OriginalQuantity    int64   `json:"original_quantity"`
	AllocatedQuantity   int64   `json:"allocated_quantity"`
	ClearingPrice       string  `json:"clearing_price"`
	TotalAmount         string  `json:"total_amount"`
	AllocationType      string  `json:"allocation_type"`
	ProRataPercentage   *string `json:"pro_rata_percentage,omitempty"`
	SettlementStatus    string  `json:"settlement_status,omitempty"`
	PaymentReference    *string `json:"payment_reference,omitempty"`
	PaymentReceivedAt   *string `json:"payment_received_at,omitempty"`
	SharesTransferredAt *string `json:"shares_transferred_at,omitempty"`
	CompletedAt         *string `json:"completed_at,omitempty"`
}

// NewAuctionResponse converts an auction record into its API shape.
func NewAuctionResponse(a model.Auction) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:   a.AuctionID,
		CompanyID:   a.CompanyID,
		SharesCount: a.SharesCount,
		MaxPrice:    a.MaxPrice.String(),
		MinPrice:    a.MinPrice.String(),
		Status:      string(a.Status),
		TotalDemand: a.TotalDemand,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.BidCollectionEndTime != nil {
		end := a.BidCollectionEndTime.UTC().Format(time.RFC3339)
		resp.BidCollectionEndTime = &end
	}
	if a.ClearingPrice != nil {
		price := a.ClearingPrice.String()
		resp.ClearingPrice = &price
	}
	return resp
}

// NewBidResponse converts a bid record into its API shape.
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:             b.BidID,
		AuctionID:         b.AuctionID,
		BidderID:          b.BidderID,
		QuantityRequested: b.QuantityRequested,
		MaxPrice:          b.MaxPrice.String(),
		BidTime:           b.BidTime.UTC().Format(time.RFC3339),
	}
}

// NewClearingResultResponse converts a clearing result into its API shape.
func NewClearingResultResponse(r model.ClearingResult) ClearingResultResponse {
	return ClearingResultResponse{
		AuctionID:       r.AuctionID,
		ClearingPrice:   r.ClearingPrice.String(),
		TotalBidsCount:  r.TotalBidsCount,
		TotalDemand:     r.TotalDemand,
		SharesOffered:   r.SharesOffered,
		PriceFloor:      r.PriceFloor.String(),
		SharesAllocated: r.SharesAllocated,
		SharesRemaining: r.SharesRemaining,
		ProRataApplied:  r.ProRataApplied,
		ClearedAt:       r.ClearedAt.UTC().Format(time.RFC3339),
	}
}

// NewAllocationResponse converts an allocation record into its API shape.
func NewAllocationResponse(a model.Allocation) AllocationResponse {
	resp := AllocationResponse{
		AllocationID:      a.AllocationID,
		AuctionID:         a.AuctionID,
		BidderID:          a.BidderID,
		OriginalQuantity:  a.OriginalQuantity,
		AllocatedQuantity: a.AllocatedQuantity,
		ClearingPrice:     a.ClearingPrice.String(),
		TotalAmount:       a.TotalAmount.String(),
		AllocationType:    string(a.AllocationType),
		SettlementStatus:  string(a.SettlementStatus),
	}
	if a.ProRataPercentage != nil {
		pct := a.ProRataPercentage.String()
		resp.ProRataPercentage = &pct
	}
	resp.PaymentReference = a.PaymentReference
	resp.PaymentReceivedAt = formatTime(a.PaymentReceivedAt)
	resp.SharesTransferredAt = formatTime(a.SharesTransferredAt)
	resp.CompletedAt = formatTime(a.CompletedAt)
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// ParsePrice parses a price string from a request body.
func ParsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}
