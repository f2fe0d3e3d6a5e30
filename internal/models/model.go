package models

import "time"

// Phase is the lifecycle stage of an auction at a given instant
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseActive    Phase = "active"
	PhaseEnded     Phase = "ended"
	PhaseFinalized Phase = "finalized"
)

// AuctionDetails is a point-in-time snapshot of an auction
type AuctionDetails struct {
	AuctionID        string    `json:"auction_id"`
	ItemRef          string    `json:"item_ref"`
	Seller           string    `json:"seller,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Phase            Phase     `json:"phase"`
	HighestBidder    string    `json:"highest_bidder,omitempty"`
	HighestBidAmount uint64    `json:"highest_bid_amount"`
	Bidders          []string  `json:"bidders"`
	BidCount         int       `json:"bid_count"`
	RevealedCount    int       `json:"revealed_count"`
	CreatedAt        time.Time `json:"created_at"`
	FinalizedAt      time.Time `json:"finalized_at,omitzero"`
}

// Bid is a sealed bid and, once revealed, its plaintext amount
type Bid struct {
	AuctionID        string    `json:"auction_id"`
	Bidder           string    `json:"bidder"`
	Ciphertext       []byte    `json:"ciphertext"`
	CiphertextHandle string    `json:"ciphertext_handle"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Decrypted        bool      `json:"decrypted"`
	RevealedAmount   uint64    `json:"revealed_amount"`
	RevealedAt       time.Time `json:"revealed_at,omitzero"`
	LateReveal       bool      `json:"late_reveal,omitempty"`
}

// AuctionResult is the fixed outcome recorded by finalization
type AuctionResult struct {
	AuctionID   string    `json:"auction_id"`
	Winner      string    `json:"winner"`
	Amount      uint64    `json:"amount"`
	FinalizedAt time.Time `json:"finalized_at"`
}

// EventType names a notification emitted by a successful mutation
type EventType string

const (
	EventAuctionCreated   EventType = "AuctionCreated"
	EventBidPlaced        EventType = "BidPlaced"
	EventBidRevealed      EventType = "BidRevealed"
	EventAuctionFinalized EventType = "AuctionFinalized"
)

// Event carries the key fields of one committed mutation. Only the fields
// relevant to Type are populated.
type Event struct {
	EventID          string    `json:"event_id"`
	Sequence         uint64    `json:"sequence"`
	Type             EventType `json:"type"`
	AuctionID        string    `json:"auction_id"`
	Actor            string    `json:"actor,omitempty"`
	ItemRef          string    `json:"item_ref,omitempty"`
	StartTime        time.Time `json:"start_time,omitzero"`
	EndTime          time.Time `json:"end_time,omitzero"`
	Bidder           string    `json:"bidder,omitempty"`
	CiphertextHandle string    `json:"ciphertext_handle,omitempty"`
	Amount           uint64    `json:"amount"`
	Winner           string    `json:"winner,omitempty"`
	At               time.Time `json:"at"`
}
