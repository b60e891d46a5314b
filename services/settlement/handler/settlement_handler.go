package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	model "share-auction/internal/models"
	settlement "share-auction/internal/settlementService"
	auctionhelpers "share-auction/services/auction/helpers"
	"share-auction/services/settlement/helpers"
	"share-auction/utils"
)

type SettlementServiceInterface interface {
	ApplyTransition(ctx context.Context, allocationID string, action settlement.Action, paymentRef string) (model.Allocation, error)
	ApplyBulk(ctx context.Context, auctionID string, allocationIDs []string, action settlement.Action, paymentRef string) (settlement.BatchResult, error)
	Report(ctx context.Context, auctionID string) (settlement.Report, error)
}

type SettlementHandler struct {
	service SettlementServiceInterface
}

func NewSettlementHandler(service SettlementServiceInterface) *SettlementHandler {
	return &SettlementHandler{service: service}
}

// ApplySettlementActionHandler handles POST /allocations/:allocation_id/settlement
func (h *SettlementHandler) ApplySettlementActionHandler(c *gin.Context) {
	allocationID := c.Param("allocation_id")

	var req helpers.SettlementActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "ApplySettlementActionHandler", err)
		return
	}

	alloc, err := h.service.ApplyTransition(c.Request.Context(), allocationID, settlement.Action(req.Action), req.PaymentReference)
	if err != nil {
		status, message := auctionhelpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("ApplySettlementActionHandler: transition failed", map[string]any{
			"allocation_id": allocationID,
			"action":        req.Action,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auctionhelpers.NewAllocationResponse(alloc), "settlement updated successfully")
	auctionhelpers.LogSuccess("ApplySettlementActionHandler", "settlement updated successfully", map[string]any{
		"allocation_id":     allocationID,
		"action":            req.Action,
		"settlement_status": string(alloc.SettlementStatus),
	})
}

// BulkSettlementHandler handles POST /auctions/:auction_id/settlement/bulk
func (h *SettlementHandler) BulkSettlementHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.BulkSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "BulkSettlementHandler", err)
		return
	}

	result, err := h.service.ApplyBulk(c.Request.Context(), auctionID, req.AllocationIDs, settlement.Action(req.Action), req.PaymentReference)
	if err != nil {
		status, message := auctionhelpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("BulkSettlementHandler: bulk action failed", map[string]any{
			"auction_id": auctionID,
			"action":     req.Action,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBatchResponse(result), "bulk settlement processed")
	auctionhelpers.LogSuccess("BulkSettlementHandler", "bulk settlement processed", map[string]any{
		"auction_id": auctionID,
		"action":     req.Action,
		"succeeded":  len(result.Succeeded),
		"failed":     len(result.Failed),
	})
}

// SettlementReportHandler handles GET /auctions/:auction_id/settlement/report
func (h *SettlementHandler) SettlementReportHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	report, err := h.service.Report(c.Request.Context(), auctionID)
	if err != nil {
		status, message := auctionhelpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("SettlementReportHandler: report failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, report, "settlement report retrieved successfully")
}
