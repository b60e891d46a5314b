package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"share-auction/internal/auctionerrors"
	"share-auction/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrAllocationNotFound):
		return http.StatusNotFound, "allocation not found"
	case errors.Is(err, auctionerrors.ErrClearingResultNotFound):
		return http.StatusNotFound, "auction has not been cleared"
	case errors.Is(err, auctionerrors.ErrInvalidAuctionParameters):
		return http.StatusBadRequest, "invalid auction parameters"
	case errors.Is(err, auctionerrors.ErrBidOutOfRange):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrAuctionNotAcceptingBids):
		return http.StatusConflict, "auction not accepting bids"
	case errors.Is(err, auctionerrors.ErrAlreadyCleared):
		return http.StatusConflict, "auction already cleared"
	case errors.Is(err, auctionerrors.ErrClearingNotAllowed):
		return http.StatusConflict, "clearing not allowed"
	case errors.Is(err, auctionerrors.ErrInvalidStatusChange):
		return http.StatusConflict, "invalid auction status change"
	case errors.Is(err, auctionerrors.ErrInvalidSettlementTransition):
		return http.StatusConflict, "invalid settlement transition"
	case errors.Is(err, auctionerrors.ErrEmptyBatch):
		return http.StatusBadRequest, "empty settlement batch"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
