package server

import (
	"net/http"

	"sealed-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService handler.AuctionServiceInterface, feed handler.EventFeed) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())           // recover from panics
	router.Use(CallerIdentityMiddleware) // trusted caller identity
	router.Use(RequestLoggerMiddleware)  // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService, feed)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.ListBidsHandler)
		auctions.GET("/:auction_id/bids/:bidder", auctionHandler.GetBidHandler)
		auctions.POST("/:auction_id/bids/:bidder/reveal", auctionHandler.RevealBidHandler)
		auctions.GET("/:auction_id/bidders", auctionHandler.ListBiddersHandler)
		auctions.POST("/:auction_id/finalize", auctionHandler.FinalizeAuctionHandler)
	}

	router.GET("/events", auctionHandler.EventsHandler)

	return router
}
