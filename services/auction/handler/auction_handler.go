package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model "share-auction/internal/models"
	"share-auction/services/auction/helpers"
	"share-auction/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, companyID string, sharesCount int64, maxPrice, minPrice decimal.Decimal) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	StartAuction(ctx context.Context, auctionID string, window time.Duration) (model.Auction, error)
	CancelAuction(ctx context.Context, auctionID string) (model.Auction, error)
	SubmitBid(ctx context.Context, auctionID, bidderID string, quantity int64, maxPrice decimal.Decimal) (model.Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]model.Bid, error)
	TriggerClearing(ctx context.Context, auctionID string, force bool) (model.ClearingResult, []model.Allocation, error)
	GetClearingResult(ctx context.Context, auctionID string) (model.ClearingResult, error)
	ListAllocations(ctx context.Context, auctionID string) ([]model.Allocation, error)
}

type AuctionHandler struct {
	service       AuctionServiceInterface
	defaultWindow time.Duration
}

func NewAuctionHandler(service AuctionServiceInterface, defaultWindow time.Duration) *AuctionHandler {
	return &AuctionHandler{service: service, defaultWindow: defaultWindow}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}
	maxPrice, err := helpers.ParsePrice(req.MaxPrice)
	if err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", fmt.Errorf("max_price: %w", err))
		return
	}
	minPrice, err := helpers.ParsePrice(req.MinPrice)
	if err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", fmt.Errorf("min_price: %w", err))
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), req.CompanyID, req.SharesCount, maxPrice, minPrice)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"company_id": req.CompanyID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"company_id": auction.CompanyID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("GetAuctionHandler: failed to get auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction retrieved successfully")
}

// StartAuctionHandler handles POST /auctions/:auction_id/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.StartAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		helpers.HandleBindError(c, "StartAuctionHandler", err)
		return
	}
	window := h.defaultWindow
	if req.DurationHours > 0 {
		window = time.Duration(req.DurationHours) * time.Hour
	}

	auction, err := h.service.StartAuction(c.Request.Context(), auctionID, window)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("StartAuctionHandler: failed to start auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction started successfully")
	helpers.LogSuccess("StartAuctionHandler", "auction started successfully", map[string]any{
		"auction_id":              auction.AuctionID,
		"bid_collection_end_time": auction.BidCollectionEndTime,
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.CancelAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("CancelAuctionHandler: failed to cancel auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{"auction_id": auctionID})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	maxPrice, err := helpers.ParsePrice(req.MaxPrice)
	if err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", fmt.Errorf("max_price: %w", err))
		return
	}

	bid, err := h.service.SubmitBid(c.Request.Context(), auctionID, req.BidderID, req.Quantity, maxPrice)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("PlaceBidHandler: failed to record bid", map[string]any{
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"bidder_id":  bid.BidderID,
		"quantity":   bid.QuantityRequested,
	})
}

// GetBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListBids(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("GetBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}

// TriggerClearingHandler handles POST /auctions/:auction_id/clearing
func (h *AuctionHandler) TriggerClearingHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.TriggerClearingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		helpers.HandleBindError(c, "TriggerClearingHandler", err)
		return
	}

	result, allocations, err := h.service.TriggerClearing(c.Request.Context(), auctionID, req.Force)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("TriggerClearingHandler: clearing failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	allocResp := make([]helpers.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		allocResp = append(allocResp, helpers.NewAllocationResponse(a))
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"clearing_result": helpers.NewClearingResultResponse(result),
		"allocations":     allocResp,
	}, "auction cleared successfully")
	helpers.LogSuccess("TriggerClearingHandler", "auction cleared successfully", map[string]any{
		"auction_id":     auctionID,
		"clearing_price": result.ClearingPrice.String(),
		"allocations":    len(allocations),
	})
}

// GetClearingResultHandler handles GET /auctions/:auction_id/clearing
func (h *AuctionHandler) GetClearingResultHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	result, err := h.service.GetClearingResult(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("GetClearingResultHandler: error retrieving result", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewClearingResultResponse(result), "clearing result retrieved successfully")
}

// GetAllocationsHandler handles GET /auctions/:auction_id/allocations
func (h *AuctionHandler) GetAllocationsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	allocations, err := h.service.ListAllocations(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("GetAllocationsHandler: error retrieving allocations", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := make([]helpers.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		resp = append(resp, helpers.NewAllocationResponse(a))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "allocations retrieved successfully")
}
