package helpers

import "time"

// Request/Response DTOs
type CreateAuctionRequest struct {
	AuctionID string    `json:"auction_id"`
	ItemRef   string    `json:"item_ref" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Ciphertext and proofs travel as base64 strings
type PlaceBidRequest struct {
	Ciphertext      []byte `json:"ciphertext" binding:"required"`
	CommitmentProof []byte `json:"commitment_proof" binding:"required"`
}

type RevealBidRequest struct {
	Amount       *uint64 `json:"amount" binding:"required"`
	OpeningProof []byte  `json:"opening_proof" binding:"required"`
}

type BidResponse struct {
	AuctionID        string  `json:"auction_id"`
	Bidder           string  `json:"bidder"`
	CiphertextHandle string  `json:"ciphertext_handle"`
	SubmittedAt      string  `json:"submitted_at"`
	Decrypted        bool    `json:"decrypted"`
	RevealedAmount   *uint64 `json:"revealed_amount,omitempty"`
	RevealedAt       string  `json:"revealed_at,omitempty"`
	LateReveal       bool    `json:"late_reveal,omitempty"`
}

type AuctionResponse struct {
	AuctionID        string   `json:"auction_id"`
	ItemRef          string   `json:"item_ref"`
	Seller           string   `json:"seller,omitempty"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Phase            string   `json:"phase"`
	HighestBidder    string   `json:"highest_bidder,omitempty"`
	HighestBidAmount uint64   `json:"highest_bid_amount"`
	Bidders          []string `json:"bidders"`
	BidCount         int      `json:"bid_count"`
	RevealedCount    int      `json:"revealed_count"`
	FinalizedAt      string   `json:"finalized_at,omitempty"`
}

type FinalizeResponse struct {
	AuctionID   string `json:"auction_id"`
	Winner      string `json:"winner"`
	Amount      uint64 `json:"amount"`
	FinalizedAt string `json:"finalized_at"`
}
