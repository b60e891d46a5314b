package server

import (
	"time"

	"github.com/gin-gonic/gin"

	auction "share-auction/internal/auctionService"
	settlement "share-auction/internal/settlementService"
	auctionhandler "share-auction/services/auction/handler"
	settlementhandler "share-auction/services/settlement/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, settlementService *settlement.SettlementService, defaultBidWindow time.Duration) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := auctionhandler.NewAuctionHandler(auctionService, defaultBidWindow)
	settlementHandler := settlementhandler.NewSettlementHandler(settlementService)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/start", auctionHandler.StartAuctionHandler)
		auctions.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsHandler)
		auctions.POST("/:auction_id/clearing", auctionHandler.TriggerClearingHandler)
		auctions.GET("/:auction_id/clearing", auctionHandler.GetClearingResultHandler)
		auctions.GET("/:auction_id/allocations", auctionHandler.GetAllocationsHandler)
		auctions.POST("/:auction_id/settlement/bulk", settlementHandler.BulkSettlementHandler)
		auctions.GET("/:auction_id/settlement/report", settlementHandler.SettlementReportHandler)
	}

	allocations := router.Group("/allocations")
	{
		allocations.POST("/:allocation_id/settlement", settlementHandler.ApplySettlementActionHandler)
	}

	return router
}
