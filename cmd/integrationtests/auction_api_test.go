package integrationtests

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	auctionhelpers "share-auction/services/auction/helpers"
	settlementhelpers "share-auction/services/settlement/helpers"
)

func createAuction(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", auctionhelpers.CreateAuctionRequest{
		CompanyID:   "company-1",
		SharesCount: 100,
		MaxPrice:    "200",
		MinPrice:    "50",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return data(t, resp)["auction_id"].(string)
}

func startAuction(t *testing.T, router *gin.Engine, auctionID string) {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/start",
		auctionhelpers.StartAuctionRequest{DurationHours: 1})
	require.Equal(t, http.StatusOK, w.Code)
}

func placeBid(t *testing.T, router *gin.Engine, auctionID, bidderID string, qty int64, maxPrice string) {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids",
		auctionhelpers.PlaceBidRequest{BidderID: bidderID, Quantity: qty, MaxPrice: maxPrice})
	require.Equal(t, http.StatusCreated, w.Code)
}

// The full auction lifecycle: create, start, bid, clear, settle, report.
func TestAuctionLifecycle(t *testing.T) {
	router := SetupTestRouter()
	auctionID := createAuction(t, router)

	// Bids are rejected before the auction starts.
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids",
		auctionhelpers.PlaceBidRequest{BidderID: "bidder-a", Quantity: 10, MaxPrice: "100"})
	require.Equal(t, http.StatusConflict, w.Code)

	startAuction(t, router, auctionID)

	placeBid(t, router, auctionID, "bidder-a", 80, "120")
	placeBid(t, router, auctionID, "bidder-b", 60, "100")
	placeBid(t, router, auctionID, "bidder-c", 40, "100")

	// Out-of-range prices are rejected.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids",
		auctionhelpers.PlaceBidRequest{BidderID: "bidder-d", Quantity: 10, MaxPrice: "201"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 3)

	// The window is still open, so only a forced clearing may run.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing",
		auctionhelpers.TriggerClearingRequest{Force: true})
	require.Equal(t, http.StatusOK, w.Code)

	clearingData := data(t, resp)
	result := clearingData["clearing_result"].(map[string]any)
	require.Equal(t, "100", result["clearing_price"])
	require.Equal(t, float64(100), result["shares_allocated"])
	require.Equal(t, true, result["pro_rata_applied"])

	allocations := clearingData["allocations"].([]any)
	require.Len(t, allocations, 3)

	allocIDs := make([]string, 0, len(allocations))
	byBidder := map[string]map[string]any{}
	for _, raw := range allocations {
		alloc := raw.(map[string]any)
		byBidder[alloc["bidder_id"].(string)] = alloc
		allocIDs = append(allocIDs, alloc["allocation_id"].(string))
	}
	require.Equal(t, float64(80), byBidder["bidder-a"]["allocated_quantity"])
	require.Equal(t, "full", byBidder["bidder-a"]["allocation_type"])
	require.Equal(t, float64(12), byBidder["bidder-b"]["allocated_quantity"])
	require.Equal(t, "pro_rata", byBidder["bidder-b"]["allocation_type"])
	require.Equal(t, float64(8), byBidder["bidder-c"]["allocated_quantity"])
	// Everyone pays the clearing price.
	require.Equal(t, "8000", byBidder["bidder-a"]["total_amount"])

	// A second trigger observes the idempotency guard.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing",
		auctionhelpers.TriggerClearingRequest{Force: true})
	require.Equal(t, http.StatusConflict, w.Code)

	// The persisted result stays readable.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/clearing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "100", data(t, resp)["clearing_price"])

	// Settle every allocation through the full workflow.
	for _, action := range []string{"confirm_payment", "confirm_transfer", "complete"} {
		resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/settlement/bulk",
			settlementhelpers.BulkSettlementRequest{AllocationIDs: allocIDs, Action: action, PaymentReference: "wire-batch"})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, float64(3), data(t, resp)["succeeded_count"])
	}

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/settlement/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := data(t, resp)
	require.Equal(t, float64(3), report["total_allocations"])
	require.Equal(t, float64(3), report["successful_allocations"])
	require.Equal(t, "100", report["completion_percentage"])
	require.Equal(t, true, report["all_complete"])
}

// Re-submitting a bid replaces the earlier one instead of stacking.
func TestRebidReplacesEarlierBid(t *testing.T) {
	router := SetupTestRouter()
	auctionID := createAuction(t, router)
	startAuction(t, router, auctionID)

	placeBid(t, router, auctionID, "bidder-a", 10, "80")
	placeBid(t, router, auctionID, "bidder-a", 25, "90")

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	bids := resp["data"].([]any)
	require.Len(t, bids, 1)
	bid := bids[0].(map[string]any)
	require.Equal(t, float64(25), bid["quantity_requested"])
	require.Equal(t, "90", bid["max_price"])
}

// Settlement steps cannot be skipped.
func TestSettlementStepOrderEnforced(t *testing.T) {
	router := SetupTestRouter()
	auctionID := createAuction(t, router)
	startAuction(t, router, auctionID)
	placeBid(t, router, auctionID, "bidder-a", 40, "120")

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing",
		auctionhelpers.TriggerClearingRequest{Force: true})
	require.Equal(t, http.StatusOK, w.Code)
	alloc := data(t, resp)["allocations"].([]any)[0].(map[string]any)
	allocID := alloc["allocation_id"].(string)

	// Transfer before payment is illegal.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/allocations/"+allocID+"/settlement",
		settlementhelpers.SettlementActionRequest{Action: "confirm_transfer"})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/allocations/"+allocID+"/settlement",
		settlementhelpers.SettlementActionRequest{Action: "confirm_payment", PaymentReference: "wire-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "payment_received", data(t, resp)["settlement_status"])

	// The same action twice is rejected by the compare-and-set.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/allocations/"+allocID+"/settlement",
		settlementhelpers.SettlementActionRequest{Action: "confirm_payment"})
	require.Equal(t, http.StatusConflict, w.Code)
}

// Cancelled auctions accept no bids and cannot be cleared.
func TestCancelAuction(t *testing.T) {
	router := SetupTestRouter()
	auctionID := createAuction(t, router)
	startAuction(t, router, auctionID)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cancelled", data(t, resp)["status"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids",
		auctionhelpers.PlaceBidRequest{BidderID: "bidder-a", Quantity: 10, MaxPrice: "100"})
	require.Equal(t, http.StatusConflict, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing",
		auctionhelpers.TriggerClearingRequest{Force: true})
	require.Equal(t, http.StatusConflict, w.Code)

	// Cancelling twice conflicts.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/cancel", nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

// An auction with no bids clears at the floor with nothing allocated.
func TestClearingWithNoBids(t *testing.T) {
	router := SetupTestRouter()
	auctionID := createAuction(t, router)
	startAuction(t, router, auctionID)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/clearing",
		auctionhelpers.TriggerClearingRequest{Force: true})
	require.Equal(t, http.StatusOK, w.Code)

	result := data(t, resp)["clearing_result"].(map[string]any)
	require.Equal(t, "50", result["clearing_price"])
	require.Equal(t, float64(0), result["shares_allocated"])
	require.Equal(t, float64(100), result["shares_remaining"])

	// A report over zero allocations is empty but valid.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/settlement/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := data(t, resp)
	require.Equal(t, float64(0), report["total_allocations"])
	require.Equal(t, false, report["all_complete"])
}
