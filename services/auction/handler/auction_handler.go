package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	model "sealed-auction/internal/models"
	"sealed-auction/services/auction/helpers"
	"sealed-auction/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_handler.go -package=handler

// CallerIDKey is the gin context key holding the authenticated caller identity
const CallerIDKey = "caller_id"

type AuctionServiceInterface interface {
	CreateAuction(seller, auctionID, itemRef string, startTime, endTime time.Time) (model.AuctionDetails, error)
	PlaceBid(auctionID, bidder string, ciphertext, proof []byte) (model.Bid, error)
	RevealBid(actor, auctionID, bidder string, amount uint64, proof []byte) (model.Bid, error)
	FinalizeAuction(actor, auctionID string) (model.AuctionResult, error)
	GetAuctionDetails(auctionID string) (model.AuctionDetails, error)
	GetBid(auctionID, bidder string) (model.Bid, error)
	ListBids(auctionID string) ([]model.Bid, error)
	ListBidders(auctionID string) ([]string, error)
	ListAuctionIDs() []string
}

type EventFeed interface {
	Since(seq uint64) []model.Event
}

type AuctionHandler struct {
	service AuctionServiceInterface
	feed    EventFeed
}

func NewAuctionHandler(service AuctionServiceInterface, feed EventFeed) *AuctionHandler {
	return &AuctionHandler{service: service, feed: feed}
}

func callerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}

// respondError maps err to a status, writes it and logs at the right level
func respondError(c *gin.Context, handlerName, logMsg string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	ctx["handler"] = handlerName
	ctx["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+logMsg, ctx)
		return
	}
	utils.Warn(handlerName+": "+logMsg, ctx)
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auctionID := req.AuctionID
	if auctionID == "" {
		auctionID = utils.GenerateID()
	}

	details, err := h.service.CreateAuction(callerID(c), auctionID, req.ItemRef, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, "CreateAuctionHandler", "failed to create auction", err, map[string]any{
			"auction_id": auctionID,
			"item_ref":   req.ItemRef,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(details), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": details.AuctionID,
		"item_ref":   details.ItemRef,
		"seller":     details.Seller,
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	ids := h.service.ListAuctionIDs()
	if ids == nil {
		ids = []string{}
	}

	utils.JSONResponse(c, http.StatusOK, ids, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(ids),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	details, err := h.service.GetAuctionDetails(auctionID)
	if err != nil {
		respondError(c, "GetAuctionHandler", "error retrieving auction", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(details), "auction retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bidder := callerID(c)

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(auctionID, bidder, req.Ciphertext, req.CommitmentProof)
	if err != nil {
		respondError(c, "PlaceBidHandler", "failed to place bid", err, map[string]any{
			"auction_id": auctionID,
			"bidder":     bidder,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"auction_id":        auctionID,
		"bidder":            bidder,
		"ciphertext_handle": bid.CiphertextHandle,
	})
}

// ListBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) ListBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListBids(auctionID)
	if err != nil {
		respondError(c, "ListBidsHandler", "error retrieving bids", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.ToBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// ListBiddersHandler handles GET /auctions/:auction_id/bidders
func (h *AuctionHandler) ListBiddersHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bidders, err := h.service.ListBidders(auctionID)
	if err != nil {
		respondError(c, "ListBiddersHandler", "error retrieving bidders", err, map[string]any{"auction_id": auctionID})
		return
	}

	if bidders == nil {
		bidders = []string{}
	}

	utils.JSONResponse(c, http.StatusOK, bidders, "bidders retrieved successfully")
}

// GetBidHandler handles GET /auctions/:auction_id/bids/:bidder
func (h *AuctionHandler) GetBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bidder := c.Param("bidder")
	bid, err := h.service.GetBid(auctionID, bidder)
	if err != nil {
		respondError(c, "GetBidHandler", "error retrieving bid", err, map[string]any{
			"auction_id": auctionID,
			"bidder":     bidder,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid retrieved successfully")
}

// RevealBidHandler handles POST /auctions/:auction_id/bids/:bidder/reveal
func (h *AuctionHandler) RevealBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bidder := c.Param("bidder")

	var req helpers.RevealBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RevealBidHandler", err)
		return
	}

	bid, err := h.service.RevealBid(callerID(c), auctionID, bidder, *req.Amount, req.OpeningProof)
	if err != nil {
		respondError(c, "RevealBidHandler", "failed to reveal bid", err, map[string]any{
			"auction_id": auctionID,
			"bidder":     bidder,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid revealed successfully")
	helpers.LogSuccess("RevealBidHandler", "bid revealed successfully", map[string]any{
		"auction_id": auctionID,
		"bidder":     bidder,
		"amount":     bid.RevealedAmount,
		"late":       bid.LateReveal,
	})
}

// FinalizeAuctionHandler handles POST /auctions/:auction_id/finalize
func (h *AuctionHandler) FinalizeAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	result, err := h.service.FinalizeAuction(callerID(c), auctionID)
	if err != nil {
		respondError(c, "FinalizeAuctionHandler", "failed to finalize auction", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToFinalizeResponse(result), "auction finalized successfully")
	helpers.LogSuccess("FinalizeAuctionHandler", "auction finalized successfully", map[string]any{
		"auction_id": auctionID,
		"winner":     result.Winner,
		"amount":     result.Amount,
	})
}

// EventsHandler handles GET /events?since=N
func (h *AuctionHandler) EventsHandler(c *gin.Context) {
	var since uint64
	if raw := c.Query("since"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid since parameter: %w", err), "invalid since parameter")
			return
		}
		since = n
	}

	utils.JSONResponse(c, http.StatusOK, h.feed.Since(since), "events retrieved successfully")
}
