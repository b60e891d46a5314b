package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"share-auction/internal/auctionerrors"
	model "share-auction/internal/models"
)

// mysqlDupEntry is the MySQL error number for a duplicate key violation.
// It backs the clearing idempotency guard: the unique key on
// clearing_results.auction_id makes concurrent clearing triggers race safely.
const mysqlDupEntry = 1062

// SQLRepo is a MySQL-backed implementation of AuctionDB. Clearing results are
// written in a single transaction; settlement and status changes use
// conditional UPDATEs as the compare-and-set.
type SQLRepo struct {
	db *sql.DB
}

// NewSQLRepo returns a SQLRepo bound to the given database handle.
func NewSQLRepo(db *sql.DB) *SQLRepo { return &SQLRepo{db: db} }

func (r *SQLRepo) CreateAuction(ctx context.Context, a model.Auction) error {
	const q = `INSERT INTO auctions
		(auction_id, company_id, shares_count, max_price, min_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		a.AuctionID, a.CompanyID, a.SharesCount, a.MaxPrice, a.MinPrice, string(a.Status), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, err)
	}
	return nil
}

func (r *SQLRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	const q = `SELECT auction_id, company_id, shares_count, max_price, min_price, status,
		bid_collection_end_time, clearing_price, total_demand, created_at
		FROM auctions WHERE auction_id = ?`
	var (
		a             model.Auction
		status        string
		endTime       sql.NullTime
		clearingPrice decimal.NullDecimal
		totalDemand   sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, auctionID).Scan(
		&a.AuctionID, &a.CompanyID, &a.SharesCount, &a.MaxPrice, &a.MinPrice, &status,
		&endTime, &clearingPrice, &totalDemand, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	a.Status = model.AuctionStatus(status)
	if endTime.Valid {
		t := endTime.Time.UTC()
		a.BidCollectionEndTime = &t
	}
	if clearingPrice.Valid {
		price := clearingPrice.Decimal
		a.ClearingPrice = &price
	}
	if totalDemand.Valid {
		demand := totalDemand.Int64
		a.TotalDemand = &demand
	}
	return a, nil
}

func (r *SQLRepo) UpdateAuctionStatus(ctx context.Context, auctionID string, from, to model.AuctionStatus, bidCollectionEnd *time.Time) error {
	const q = `UPDATE auctions
		SET status = ?, bid_collection_end_time = COALESCE(?, bid_collection_end_time)
		WHERE auction_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), bidCollectionEnd, auctionID, string(from))
	if err != nil {
		return fmt.Errorf("update auction %s status: %w", auctionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update auction %s status: %w", auctionID, err)
	}
	if affected == 0 {
		// Distinguish a missing auction from a lost status race.
		current, getErr := r.GetAuction(ctx, auctionID)
		if getErr != nil {
			return getErr
		}
		return fmt.Errorf("update auction %s status: expected %q but auction is %q: %w",
			auctionID, from, current.Status, auctionerrors.ErrInvalidStatusChange)
	}
	return nil
}

func (r *SQLRepo) UpsertActiveBid(ctx context.Context, bid model.Bid) error {
	if _, err := r.GetAuction(ctx, bid.AuctionID); err != nil {
		return fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, err)
	}
	// The unique key on (auction_id, bidder_id) makes a resubmission replace
	// the earlier bid in place, so latest write wins per bidder.
	const q = `INSERT INTO bids
		(bid_id, auction_id, bidder_id, quantity_requested, max_price, bid_time, active)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON DUPLICATE KEY UPDATE
			bid_id = VALUES(bid_id),
			quantity_requested = VALUES(quantity_requested),
			max_price = VALUES(max_price),
			bid_time = VALUES(bid_time),
			active = 1`
	_, err := r.db.ExecContext(ctx, q,
		bid.BidID, bid.AuctionID, bid.BidderID, bid.QuantityRequested, bid.MaxPrice, bid.BidTime)
	if err != nil {
		return fmt.Errorf("record bid for auction %s by bidder %s: %w", bid.AuctionID, bid.BidderID, err)
	}
	return nil
}

func (r *SQLRepo) GetActiveBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	const q = `SELECT bid_id, auction_id, bidder_id, quantity_requested, max_price, bid_time, active
		FROM bids WHERE auction_id = ? AND active = 1
		ORDER BY bid_time, bidder_id`
	rows, err := r.db.QueryContext(ctx, q, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	defer rows.Close()

	bids := make([]model.Bid, 0)
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.AuctionID, &b.BidderID, &b.QuantityRequested, &b.MaxPrice, &b.BidTime, &b.Active); err != nil {
			return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
		}
		b.BidTime = b.BidTime.UTC()
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

func (r *SQLRepo) SaveClearing(ctx context.Context, result model.ClearingResult, allocations []model.Allocation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	const insResult = `INSERT INTO clearing_results
		(auction_id, clearing_price, total_bids_count, total_demand, shares_offered,
		 price_floor, shares_allocated, shares_remaining, pro_rata_applied, cleared_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, insResult,
		result.AuctionID, result.ClearingPrice, result.TotalBidsCount, result.TotalDemand,
		result.SharesOffered, result.PriceFloor, result.SharesAllocated, result.SharesRemaining,
		result.ProRataApplied, result.ClearedAt)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDupEntry {
			return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, auctionerrors.ErrAlreadyCleared)
		}
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, err)
	}

	if len(allocations) > 0 {
		var sb strings.Builder
		sb.WriteString(`INSERT INTO allocations
			(allocation_id, auction_id, bidder_id, original_quantity, allocated_quantity,
			 clearing_price, total_amount, allocation_type, pro_rata_percentage,
			 settlement_status, created_at) VALUES `)
		args := make([]interface{}, 0, len(allocations)*11)
		for i, a := range allocations {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				a.AllocationID, a.AuctionID, a.BidderID, a.OriginalQuantity, a.AllocatedQuantity,
				a.ClearingPrice, a.TotalAmount, string(a.AllocationType),
				decimal.NullDecimal{Decimal: derefDecimal(a.ProRataPercentage), Valid: a.ProRataPercentage != nil},
				string(a.SettlementStatus), a.CreatedAt)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("save clearing for auction %s: insert allocations: %w", result.AuctionID, err)
		}
	}

	const updAuction = `UPDATE auctions
		SET status = ?, clearing_price = ?, total_demand = ?
		WHERE auction_id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, updAuction,
		string(model.AuctionCompleted), result.ClearingPrice, result.TotalDemand,
		result.AuctionID, string(model.AuctionCollectingBids))
	if err != nil {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, err)
	}
	if affected == 0 {
		return fmt.Errorf("save clearing for auction %s: auction left collecting_bids: %w",
			result.AuctionID, auctionerrors.ErrInvalidStatusChange)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save clearing for auction %s: %w", result.AuctionID, err)
	}
	return nil
}

func (r *SQLRepo) GetClearingResult(ctx context.Context, auctionID string) (model.ClearingResult, error) {
	const q = `SELECT auction_id, clearing_price, total_bids_count, total_demand, shares_offered,
		price_floor, shares_allocated, shares_remaining, pro_rata_applied, cleared_at
		FROM clearing_results WHERE auction_id = ?`
	var result model.ClearingResult
	err := r.db.QueryRowContext(ctx, q, auctionID).Scan(
		&result.AuctionID, &result.ClearingPrice, &result.TotalBidsCount, &result.TotalDemand,
		&result.SharesOffered, &result.PriceFloor, &result.SharesAllocated, &result.SharesRemaining,
		&result.ProRataApplied, &result.ClearedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ClearingResult{}, fmt.Errorf("get clearing result for auction %s: %w", auctionID, auctionerrors.ErrClearingResultNotFound)
	}
	if err != nil {
		return model.ClearingResult{}, fmt.Errorf("get clearing result for auction %s: %w", auctionID, err)
	}
	result.ClearedAt = result.ClearedAt.UTC()
	return result, nil
}

const allocationColumns = `allocation_id, auction_id, bidder_id, original_quantity, allocated_quantity,
	clearing_price, total_amount, allocation_type, pro_rata_percentage, settlement_status,
	payment_reference, payment_received_at, shares_transferred_at, completed_at, created_at`

func (r *SQLRepo) GetAllocation(ctx context.Context, allocationID string) (model.Allocation, error) {
	q := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = ?`
	alloc, err := scanAllocation(r.db.QueryRowContext(ctx, q, allocationID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Allocation{}, fmt.Errorf("get allocation %s: %w", allocationID, auctionerrors.ErrAllocationNotFound)
	}
	if err != nil {
		return model.Allocation{}, fmt.Errorf("get allocation %s: %w", allocationID, err)
	}
	return alloc, nil
}

func (r *SQLRepo) GetAllocationsByAuction(ctx context.Context, auctionID string) ([]model.Allocation, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	q := `SELECT ` + allocationColumns + ` FROM allocations WHERE auction_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get allocations for auction %s: %w", auctionID, err)
	}
	defer rows.Close()

	allocs := make([]model.Allocation, 0)
	for rows.Next() {
		alloc, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("get allocations for auction %s: %w", auctionID, err)
		}
		allocs = append(allocs, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get allocations for auction %s: %w", auctionID, err)
	}
	return allocs, nil
}

func (r *SQLRepo) UpdateSettlement(ctx context.Context, allocationID string, from, to model.SettlementStatus, paymentRef *string, at time.Time) (model.Allocation, error) {
	col := ""
	switch to {
	case model.SettlementPaymentReceived:
		col = "payment_received_at"
	case model.SettlementSharesTransferred:
		col = "shares_transferred_at"
	case model.SettlementCompleted:
		col = "completed_at"
	default:
		return model.Allocation{}, &auctionerrors.InvalidTransitionError{
			AllocationID: allocationID, Current: string(from), Requested: string(to),
		}
	}
	q := `UPDATE allocations
		SET settlement_status = ?, payment_reference = COALESCE(?, payment_reference), ` + col + ` = ?
		WHERE allocation_id = ? AND settlement_status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), paymentRef, at, allocationID, string(from))
	if err != nil {
		return model.Allocation{}, fmt.Errorf("update settlement for allocation %s: %w", allocationID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Allocation{}, fmt.Errorf("update settlement for allocation %s: %w", allocationID, err)
	}
	if affected == 0 {
		current, getErr := r.GetAllocation(ctx, allocationID)
		if getErr != nil {
			return model.Allocation{}, getErr
		}
		return model.Allocation{}, &auctionerrors.InvalidTransitionError{
			AllocationID: allocationID,
			Current:      string(current.SettlementStatus),
			Requested:    string(to),
		}
	}
	return r.GetAllocation(ctx, allocationID)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAllocation(row rowScanner) (model.Allocation, error) {
	var (
		alloc         model.Allocation
		allocType     string
		setStatus     string
		proRata       decimal.NullDecimal
		payRef        sql.NullString
		paymentAt     sql.NullTime
		transferredAt sql.NullTime
		completedAt   sql.NullTime
	)
	err := row.Scan(
		&alloc.AllocationID, &alloc.AuctionID, &alloc.BidderID,
		&alloc.OriginalQuantity, &alloc.AllocatedQuantity,
		&alloc.ClearingPrice, &alloc.TotalAmount, &allocType, &proRata, &setStatus,
		&payRef, &paymentAt, &transferredAt, &completedAt, &alloc.CreatedAt)
	if err != nil {
		return model.Allocation{}, err
	}
	alloc.AllocationType = model.AllocationType(allocType)
	alloc.SettlementStatus = model.SettlementStatus(setStatus)
	if proRata.Valid {
		pct := proRata.Decimal
		alloc.ProRataPercentage = &pct
	}
	if payRef.Valid {
		ref := payRef.String
		alloc.PaymentReference = &ref
	}
	if paymentAt.Valid {
		t := paymentAt.Time.UTC()
		alloc.PaymentReceivedAt = &t
	}
	if transferredAt.Valid {
		t := transferredAt.Time.UTC()
		alloc.SharesTransferredAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		alloc.CompletedAt = &t
	}
	alloc.CreatedAt = alloc.CreatedAt.UTC()
	return alloc, nil
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Decimal{}
	}
	return *d
}
