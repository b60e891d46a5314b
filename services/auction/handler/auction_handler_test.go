package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"share-auction/internal/auctionerrors"
	model "share-auction/internal/models"
	"share-auction/services/auction/helpers"
)

func marshalBody(t *testing.T, body any) []byte {
	t.Helper()
	switch v := body.(type) {
	case nil:
		return nil
	case string:
		return []byte(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return raw
	}
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, 72*time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", handler.CreateAuctionHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "success_valid_auction",
			requestBody: helpers.CreateAuctionRequest{
				CompanyID:   "company-1",
				SharesCount: 1000,
				MaxPrice:    "200",
				MinPrice:    "50",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "company-1", int64(1000), decimal.NewFromInt(200), decimal.NewFromInt(50)).
					Return(model.Auction{
						AuctionID:   uuid.NewString(),
						CompanyID:   "company-1",
						SharesCount: 1000,
						MaxPrice:    decimal.NewFromInt(200),
						MinPrice:    decimal.NewFromInt(50),
						Status:      model.AuctionDraft,
						CreatedAt:   now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "auction created successfully",
			validateData: func(t *testing.T, data map[string]any) {
				auctionID := data["auction_id"].(string)
				_, parseErr := uuid.Parse(auctionID)
				require.NoError(t, parseErr, "AuctionID should be a valid UUID")
				require.Equal(t, "company-1", data["company_id"])
				require.Equal(t, "draft", data["status"])
				require.Equal(t, "200", data["max_price"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_company_id",
			requestBody: helpers.CreateAuctionRequest{
				SharesCount: 1000,
				MaxPrice:    "200",
				MinPrice:    "50",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "unparseable_price",
			requestBody: helpers.CreateAuctionRequest{
				CompanyID:   "company-1",
				SharesCount: 1000,
				MaxPrice:    "two hundred",
				MinPrice:    "50",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "service_rejects_parameters",
			requestBody: helpers.CreateAuctionRequest{
				CompanyID:   "company-1",
				SharesCount: 1000,
				MaxPrice:    "50",
				MinPrice:    "50",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "company-1", int64(1000), decimal.NewFromInt(50), decimal.NewFromInt(50)).
					Return(model.Auction{}, auctionerrors.ErrInvalidAuctionParameters)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid auction parameters",
		},
		{
			name: "service_generic_error",
			requestBody: helpers.CreateAuctionRequest{
				CompanyID:   "company-1",
				SharesCount: 1000,
				MaxPrice:    "200",
				MinPrice:    "50",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "company-1", int64(1000), decimal.NewFromInt(200), decimal.NewFromInt(50)).
					Return(model.Auction{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(marshalBody(t, tc.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, 72*time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions/:auction_id/bids", handler.PlaceBidHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{
				BidderID: "bidder-1",
				Quantity: 40,
				MaxPrice: "120",
			},
			mockSetup: func() {
				mockService.EXPECT().
					SubmitBid(gomock.Any(), "auction-1", "bidder-1", int64(40), decimal.NewFromInt(120)).
					Return(model.Bid{
						BidID:             uuid.NewString(),
						AuctionID:         "auction-1",
						BidderID:          "bidder-1",
						QuantityRequested: 40,
						MaxPrice:          decimal.NewFromInt(120),
						BidTime:           now,
						Active:            true,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
		},
		{
			name: "missing_bidder_id",
			requestBody: helpers.PlaceBidRequest{
				Quantity: 40,
				MaxPrice: "120",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "unparseable_price",
			requestBody: helpers.PlaceBidRequest{
				BidderID: "bidder-1",
				Quantity: 40,
				MaxPrice: "a lot",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "service_bid_out_of_range",
			requestBody: helpers.PlaceBidRequest{
				BidderID: "bidder-1",
				Quantity: 40,
				MaxPrice: "10",
			},
			mockSetup: func() {
				mockService.EXPECT().
					SubmitBid(gomock.Any(), "auction-1", "bidder-1", int64(40), decimal.NewFromInt(10)).
					Return(model.Bid{}, auctionerrors.ErrBidOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid bid details",
		},
		{
			name: "service_window_closed",
			requestBody: helpers.PlaceBidRequest{
				BidderID: "bidder-1",
				Quantity: 40,
				MaxPrice: "120",
			},
			mockSetup: func() {
				mockService.EXPECT().
					SubmitBid(gomock.Any(), "auction-1", "bidder-1", int64(40), decimal.NewFromInt(120)).
					Return(model.Bid{}, auctionerrors.ErrAuctionNotAcceptingBids)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction not accepting bids",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auctions/auction-1/bids", bytes.NewReader(marshalBody(t, tc.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

// Test TriggerClearingHandler
func TestTriggerClearingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, 72*time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions/:auction_id/clearing", handler.TriggerClearingHandler)

	now := time.Now().UTC()

	result := model.ClearingResult{
		AuctionID:       "auction-1",
		ClearingPrice:   decimal.NewFromInt(100),
		TotalBidsCount:  2,
		TotalDemand:     120,
		SharesOffered:   100,
		PriceFloor:      decimal.NewFromInt(50),
		SharesAllocated: 100,
		ProRataApplied:  true,
		ClearedAt:       now,
	}
	allocations := []model.Allocation{
		{
			AllocationID:      uuid.NewString(),
			AuctionID:         "auction-1",
			BidderID:          "bidder-1",
			OriginalQuantity:  80,
			AllocatedQuantity: 80,
			ClearingPrice:     decimal.NewFromInt(100),
			TotalAmount:       decimal.NewFromInt(8000),
			AllocationType:    model.AllocationFull,
			SettlementStatus:  model.SettlementPendingPayment,
			CreatedAt:         now,
		},
	}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success_without_body",
			requestBody: nil,
			mockSetup: func() {
				mockService.EXPECT().
					TriggerClearing(gomock.Any(), "auction-1", false).
					Return(result, allocations, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction cleared successfully",
		},
		{
			name:        "success_with_force",
			requestBody: helpers.TriggerClearingRequest{Force: true},
			mockSetup: func() {
				mockService.EXPECT().
					TriggerClearing(gomock.Any(), "auction-1", true).
					Return(result, allocations, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction cleared successfully",
		},
		{
			name:        "already_cleared",
			requestBody: nil,
			mockSetup: func() {
				mockService.EXPECT().
					TriggerClearing(gomock.Any(), "auction-1", false).
					Return(model.ClearingResult{}, nil, auctionerrors.ErrAlreadyCleared)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction already cleared",
		},
		{
			name:        "window_still_open",
			requestBody: nil,
			mockSetup: func() {
				mockService.EXPECT().
					TriggerClearing(gomock.Any(), "auction-1", false).
					Return(model.ClearingResult{}, nil, auctionerrors.ErrClearingNotAllowed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "clearing not allowed",
		},
		{
			name:        "auction_not_found",
			requestBody: nil,
			mockSetup: func() {
				mockService.EXPECT().
					TriggerClearing(gomock.Any(), "auction-1", false).
					Return(model.ClearingResult{}, nil, auctionerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auctions/auction-1/clearing", bytes.NewReader(marshalBody(t, tc.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)

			if w.Code == http.StatusOK {
				data := resp["data"].(map[string]any)
				clearingResult := data["clearing_result"].(map[string]any)
				require.Equal(t, "100", clearingResult["clearing_price"])
				require.Len(t, data["allocations"].([]any), 1)
			}
		})
	}
}

// Test StartAuctionHandler default window
func TestStartAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, 72*time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions/:auction_id/start", handler.StartAuctionHandler)

	end := time.Now().UTC().Add(72 * time.Hour)
	started := model.Auction{
		AuctionID:            "auction-1",
		CompanyID:            "company-1",
		SharesCount:          100,
		MaxPrice:             decimal.NewFromInt(200),
		MinPrice:             decimal.NewFromInt(50),
		Status:               model.AuctionCollectingBids,
		BidCollectionEndTime: &end,
	}

	t.Run("empty_body_uses_default_window", func(t *testing.T) {
		mockService.EXPECT().
			StartAuction(gomock.Any(), "auction-1", 72*time.Hour).
			Return(started, nil)

		req := httptest.NewRequest(http.MethodPost, "/auctions/auction-1/start", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("explicit_duration_overrides_default", func(t *testing.T) {
		mockService.EXPECT().
			StartAuction(gomock.Any(), "auction-1", 24*time.Hour).
			Return(started, nil)

		body := marshalBody(t, helpers.StartAuctionRequest{DurationHours: 24})
		req := httptest.NewRequest(http.MethodPost, "/auctions/auction-1/start", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_draft_auction_conflicts", func(t *testing.T) {
		mockService.EXPECT().
			StartAuction(gomock.Any(), "auction-1", 72*time.Hour).
			Return(model.Auction{}, auctionerrors.ErrInvalidStatusChange)

		req := httptest.NewRequest(http.MethodPost, "/auctions/auction-1/start", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, 72*time.Hour)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auctions/:auction_id", handler.GetAuctionHandler)

	t.Run("found", func(t *testing.T) {
		mockService.EXPECT().
			GetAuction(gomock.Any(), "auction-1").
			Return(model.Auction{
				AuctionID:   "auction-1",
				CompanyID:   "company-1",
				SharesCount: 100,
				MaxPrice:    decimal.NewFromInt(200),
				MinPrice:    decimal.NewFromInt(50),
				Status:      model.AuctionDraft,
				CreatedAt:   time.Now().UTC(),
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auctions/auction-1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "auction-1", data["auction_id"])
	})

	t.Run("not_found", func(t *testing.T) {
		mockService.EXPECT().
			GetAuction(gomock.Any(), "missing").
			Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)

		req := httptest.NewRequest(http.MethodGet, "/auctions/missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
