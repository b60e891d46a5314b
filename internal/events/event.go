// Package events defines the engine's outbound message contracts and the
// broker plumbing that carries them. The external notifier and the cap-table
// subsystem consume these; the engine never waits on them.
package events

// Queue names on the broker. One durable queue per event kind.
const (
	QueueAuctionCleared          = "auction.cleared"
	QueueSettlementStatusChanged = "settlement.status_changed"
	QueueAllSettlementsCompleted = "settlement.all_completed"
	QueueSharesTransferConfirmed = "captable.transfer_confirmed"
)

// AuctionClearedEvent is published once when an auction's clearing run has
// been persisted. It carries enough for the notifier to fan out per-bidder
// and operator emails without querying the primary database.
type AuctionClearedEvent struct {
	AuctionID       string `json:"auction_id"`
	CompanyID       string `json:"company_id"`
	ClearingPrice   string `json:"clearing_price"`
	TotalBidsCount  int64  `json:"total_bids_count"`
	TotalDemand     int64  `json:"total_demand"`
	SharesAllocated int64  `json:"shares_allocated"`
	SharesRemaining int64  `json:"shares_remaining"`
	ProRataApplied  bool   `json:"pro_rata_applied"`
	WinnerCount     int64  `json:"winner_count"`
	ClearedAt       string `json:"cleared_at"`
}

// SettlementStatusChangedEvent is published on every successful settlement
// transition so the notifier can tell the affected bidder.
type SettlementStatusChangedEvent struct {
	AllocationID     string `json:"allocation_id"`
	AuctionID        string `json:"auction_id"`
	BidderID         string `json:"bidder_id"`
	OldStatus        string `json:"old_status"`
	NewStatus        string `json:"new_status"`
	PaymentReference string `json:"payment_reference,omitempty"`
	ChangedAt        string `json:"changed_at"`
}

// AllSettlementsCompletedEvent is published once, when the last winning
// allocation of an auction reaches completed, for the operator summary mail.
type AllSettlementsCompletedEvent struct {
	AuctionID    string `json:"auction_id"`
	CompanyID    string `json:"company_id"`
	TotalSettled int64  `json:"total_settled"`
	TotalAmount  string `json:"total_amount"`
	CompletedAt  string `json:"completed_at"`
}

// SharesTransferConfirmation is published when an allocation reaches
// shares_transferred. The external cap-table ledger applies the ownership
// change; this engine never writes to the share ledger directly.
type SharesTransferConfirmation struct {
	AuctionID     string `json:"auction_id"`
	AllocationID  string `json:"allocation_id"`
	BidderID      string `json:"bidder_id"`
	Quantity      int64  `json:"quantity"`
	ClearingPrice string `json:"clearing_price"`
	TransferredAt string `json:"transferred_at"`
}
