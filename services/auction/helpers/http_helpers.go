package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"sealed-auction/internal/auctionerrors"
	"sealed-auction/internal/models"
	"sealed-auction/utils"

	"github.com/gin-gonic/gin"
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
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrAlreadyExists):
		return http.StatusConflict, "auction already exists"
	case errors.Is(err, auctionerrors.ErrInvalidTimeWindow):
		return http.StatusBadRequest, "invalid auction time window"
	case errors.Is(err, auctionerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, auctionerrors.ErrInactiveWindow):
		return http.StatusForbidden, "auction is not accepting bids"
	case errors.Is(err, auctionerrors.ErrInvalidCiphertext):
		return http.StatusUnprocessableEntity, "invalid ciphertext"
	case errors.Is(err, auctionerrors.ErrDuplicateBid):
		return http.StatusConflict, "bidder already placed a bid"
	case errors.Is(err, auctionerrors.ErrAuctionNotEnded):
		return http.StatusTooEarly, "auction has not ended"
	case errors.Is(err, auctionerrors.ErrAlreadyDecrypted):
		return http.StatusConflict, "bid already decrypted"
	case errors.Is(err, auctionerrors.ErrInvalidProof):
		return http.StatusUnprocessableEntity, "invalid opening proof"
	case errors.Is(err, auctionerrors.ErrAlreadyFinalized):
		return http.StatusConflict, "auction already finalized"
	case errors.Is(err, auctionerrors.ErrNoValidBids):
		return http.StatusConflict, "no revealed bids"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ToBidResponse converts a bid to its wire form; the amount is omitted while sealed
func ToBidResponse(bid models.Bid) BidResponse {
	resp := BidResponse{
		AuctionID:        bid.AuctionID,
		Bidder:           bid.Bidder,
		CiphertextHandle: bid.CiphertextHandle,
		SubmittedAt:      formatTime(bid.SubmittedAt),
		Decrypted:        bid.Decrypted,
		LateReveal:       bid.LateReveal,
	}
	if bid.Decrypted {
		amount := bid.RevealedAmount
		resp.RevealedAmount = &amount
		resp.RevealedAt = formatTime(bid.RevealedAt)
	}
	return resp
}

// ToAuctionResponse converts an auction snapshot to its wire form
func ToAuctionResponse(d models.AuctionDetails) AuctionResponse {
	bidders := d.Bidders
	if bidders == nil {
		bidders = []string{}
	}
	return AuctionResponse{
		AuctionID:        d.AuctionID,
		ItemRef:          d.ItemRef,
		Seller:           d.Seller,
		StartTime:        formatTime(d.StartTime),
		EndTime:          formatTime(d.EndTime),
		Phase:            string(d.Phase),
		HighestBidder:    d.HighestBidder,
		HighestBidAmount: d.HighestBidAmount,
		Bidders:          bidders,
		BidCount:         d.BidCount,
		RevealedCount:    d.RevealedCount,
		FinalizedAt:      formatTime(d.FinalizedAt),
	}
}

// ToFinalizeResponse converts an auction result to its wire form
func ToFinalizeResponse(r models.AuctionResult) FinalizeResponse {
	return FinalizeResponse{
		AuctionID:   r.AuctionID,
		Winner:      r.Winner,
		Amount:      r.Amount,
		FinalizedAt: formatTime(r.FinalizedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
