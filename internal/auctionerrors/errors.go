package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound        = errors.New("auction not found")
	ErrAllocationNotFound     = errors.New("allocation not found")
	ErrClearingResultNotFound = errors.New("clearing result not found")
)

// business logic errors
var (
	ErrInvalidAuctionParameters    = errors.New("invalid auction parameters")
	ErrBidOutOfRange               = errors.New("bid out of range")
	ErrAuctionNotAcceptingBids     = errors.New("auction not accepting bids")
	ErrClearingNotAllowed          = errors.New("clearing not allowed")
	ErrAlreadyCleared              = errors.New("auction already cleared")
	ErrInvalidStatusChange         = errors.New("invalid auction status change")
	ErrInvalidSettlementTransition = errors.New("invalid settlement transition")
	ErrEmptyBatch                  = errors.New("empty settlement batch")
)

// InvalidTransitionError identifies which allocation rejected a settlement
// transition and what state it was actually in, so operators can detect
// stale UI state. It matches ErrInvalidSettlementTransition under errors.Is.
type InvalidTransitionError struct {
	AllocationID string
	Current      string
	Requested    string
}

func (e *InvalidTransitionError) Error() string {
	if e.Current == "" {
		return fmt.Sprintf("allocation %s has no settlement workflow (rejected at clearing), cannot move to %q", e.AllocationID, e.Requested)
	}
	return fmt.Sprintf("allocation %s cannot move from %q to %q", e.AllocationID, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidSettlementTransition }
