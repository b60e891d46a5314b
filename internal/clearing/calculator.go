// Package clearing implements the uniform-price clearing calculation for a
// modified Dutch auction: a single clearing price is derived from the sealed
// bids, supply is allocated to bidders above that price in full, and bidders
// tied at the price share the remainder pro-rata.
package clearing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"share-auction/internal/auctionerrors"
	model "share-auction/internal/models"
)

// BidInput is one active bid as seen by the calculator.
type BidInput struct {
	BidderID string
	Quantity int64
	MaxPrice decimal.Decimal
	BidTime  time.Time
}

// Params are the auction-side inputs to a clearing run.
type Params struct {
	Supply     int64
	PriceFloor decimal.Decimal
}

// Outcome is the per-bid result of a clearing run. ProRataPercentage is
// derived for display only; it is never read back into allocation math.
type Outcome struct {
	BidderID          string
	Requested         int64
	Allocated         int64
	Type              model.AllocationType
	ProRataPercentage *decimal.Decimal
}

// Result is the full output of one clearing run. Outcomes are ordered by
// descending price, then earliest bid time, then bidder id, so the output is
// reproducible from the same inputs.
type Result struct {
	ClearingPrice   decimal.Decimal
	Outcomes        []Outcome
	TotalBidsCount  int64
	TotalDemand     int64
	SharesAllocated int64
	SharesRemaining int64
	ProRataApplied  bool
}

var hundred = decimal.NewFromInt(100)

// Clear computes the clearing price and per-bid allocations. It has no side
// effects and is fully deterministic: the same bids and params always produce
// the same result, regardless of input order.
//
// The marginal bid is the first bid, in price-sorted order, at which
// cumulative demand reaches supply. With no marginal bid the auction is
// undersubscribed: everyone is filled in full at the price floor. Otherwise
// the marginal bid's price clears the auction; bids strictly above it fill in
// full, bids at it share the remaining capacity pro-rata by requested
// quantity (floor division, leftover units going one at a time to the
// earliest bidders in the tier), and bids below it get nothing.
func Clear(bids []BidInput, p Params) (*Result, error) {
	if p.Supply <= 0 {
		return nil, fmt.Errorf("clearing: supply must be positive, got %d: %w", p.Supply, auctionerrors.ErrInvalidAuctionParameters)
	}

	if len(bids) == 0 {
		return &Result{
			ClearingPrice:   p.PriceFloor,
			Outcomes:        []Outcome{},
			SharesRemaining: p.Supply,
		}, nil
	}

	sorted := append([]BidInput(nil), bids...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].MaxPrice.Equal(sorted[j].MaxPrice) {
			return sorted[i].MaxPrice.GreaterThan(sorted[j].MaxPrice)
		}
		if !sorted[i].BidTime.Equal(sorted[j].BidTime) {
			return sorted[i].BidTime.Before(sorted[j].BidTime)
		}
		return sorted[i].BidderID < sorted[j].BidderID
	})

	res := &Result{TotalBidsCount: int64(len(sorted))}
	for _, b := range sorted {
		res.TotalDemand += b.Quantity
	}

	// Locate the marginal bid.
	marginal := -1
	var running int64
	for i, b := range sorted {
		running += b.Quantity
		if running >= p.Supply {
			marginal = i
			break
		}
	}

	if marginal < 0 {
		// Undersubscribed: everyone is filled in full at the floor.
		res.ClearingPrice = p.PriceFloor
		res.Outcomes = make([]Outcome, 0, len(sorted))
		for _, b := range sorted {
			res.Outcomes = append(res.Outcomes, Outcome{
				BidderID:  b.BidderID,
				Requested: b.Quantity,
				Allocated: b.Quantity,
				Type:      model.AllocationFull,
			})
			res.SharesAllocated += b.Quantity
		}
		res.SharesRemaining = p.Supply - res.SharesAllocated
		return res, nil
	}

	clearingPrice := sorted[marginal].MaxPrice
	res.ClearingPrice = clearingPrice

	// Split demand into the full-fill band above the price and the marginal
	// tier at the price. Tier bids keep their sorted (bid time, bidder id)
	// order, which decides who receives leftover units.
	var tier []BidInput
	var aboveDemand, tierDemand int64
	for _, b := range sorted {
		switch {
		case b.MaxPrice.GreaterThan(clearingPrice):
			aboveDemand += b.Quantity
		case b.MaxPrice.Equal(clearingPrice):
			tier = append(tier, b)
			tierDemand += b.Quantity
		}
	}

	remaining := p.Supply - aboveDemand
	tierAlloc := make(map[string]int64, len(tier))
	if tierDemand <= remaining {
		// Exact fit: the tier is not actually constrained.
		for _, b := range tier {
			tierAlloc[b.BidderID] = b.Quantity
		}
	} else {
		res.ProRataApplied = true
		var distributed int64
		for _, b := range tier {
			share := remaining * b.Quantity / tierDemand
			tierAlloc[b.BidderID] = share
			distributed += share
		}
		// Floor division leaves up to len(tier)-1 units; earliest-submitted
		// bidders in the tier absorb them one unit each.
		leftover := remaining - distributed
		for _, b := range tier {
			if leftover == 0 {
				break
			}
			if tierAlloc[b.BidderID] < b.Quantity {
				tierAlloc[b.BidderID]++
				leftover--
			}
		}
	}

	res.Outcomes = make([]Outcome, 0, len(sorted))
	for _, b := range sorted {
		switch {
		case b.MaxPrice.GreaterThan(clearingPrice):
			res.Outcomes = append(res.Outcomes, Outcome{
				BidderID:  b.BidderID,
				Requested: b.Quantity,
				Allocated: b.Quantity,
				Type:      model.AllocationFull,
			})
			res.SharesAllocated += b.Quantity
		case b.MaxPrice.Equal(clearingPrice):
			res.Outcomes = append(res.Outcomes, tierOutcome(b, tierAlloc[b.BidderID]))
			res.SharesAllocated += tierAlloc[b.BidderID]
		default:
			res.Outcomes = append(res.Outcomes, Outcome{
				BidderID:  b.BidderID,
				Requested: b.Quantity,
				Type:      model.AllocationRejected,
			})
		}
	}
	res.SharesRemaining = p.Supply - res.SharesAllocated
	return res, nil
}

// tierOutcome classifies an allocation at the marginal price: a full fill is
// tagged full even at the clearing price, a partial fill is pro_rata with its
// display percentage, and a zero fill is rejected.
func tierOutcome(b BidInput, allocated int64) Outcome {
	out := Outcome{
		BidderID:  b.BidderID,
		Requested: b.Quantity,
		Allocated: allocated,
	}
	switch {
	case allocated == 0:
		out.Type = model.AllocationRejected
	case allocated == b.Quantity:
		out.Type = model.AllocationFull
	default:
		out.Type = model.AllocationProRata
		pct := decimal.NewFromInt(allocated).Mul(hundred).DivRound(decimal.NewFromInt(b.Quantity), 2)
		out.ProRataPercentage = &pct
	}
	return out
}
