package helpers

import (
	settlement "share-auction/internal/settlementService"
)

type SettlementActionRequest struct {
	Action           string `json:"action" binding:"required"`
	PaymentReference string `json:"payment_reference"`
}

type BulkSettlementRequest struct {
	AllocationIDs    []string `json:"allocation_ids"`
	Action           string   `json:"action" binding:"required"`
	PaymentReference string   `json:"payment_reference"`
}

// BatchResponse mirrors settlement.BatchResult with an added summary line so
// operators see the split without counting the arrays.
type BatchResponse struct {
	Succeeded      []string          `json:"succeeded"`
	Failed         map[string]string `json:"failed"`
	SucceededCount int               `json:"succeeded_count"`
	FailedCount    int               `json:"failed_count"`
}

func NewBatchResponse(r settlement.BatchResult) BatchResponse {
	return BatchResponse{
		Succeeded:      r.Succeeded,
		Failed:         r.Failed,
		SucceededCount: len(r.Succeeded),
		FailedCount:    len(r.Failed),
	}
}
