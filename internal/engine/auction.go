// Package engine is the sealed-bid auction state machine. Every method takes
// the current time from the caller's authoritative clock and either commits
// in full or returns an error with no state change.
package engine

import (
	"fmt"
	"time"

	"sealed-auction/internal/auctionerrors"
	bidcrypto "sealed-auction/internal/crypto"
	"sealed-auction/internal/models"
)

// LateRevealPolicy decides what happens to a reveal that arrives after
// finalization
type LateRevealPolicy string

const (
	// LateRevealAudit records the reveal on the bid without touching the outcome
	LateRevealAudit LateRevealPolicy = "audit"
	// LateRevealReject fails the reveal with ErrAlreadyFinalized
	LateRevealReject LateRevealPolicy = "reject"
)

// ParseLateRevealPolicy validates a configured policy name
func ParseLateRevealPolicy(s string) (LateRevealPolicy, error) {
	switch p := LateRevealPolicy(s); p {
	case LateRevealAudit, LateRevealReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown late reveal policy %q: %w", s, auctionerrors.ErrInvalidRequest)
	}
}

// Auction owns one auction's bids and running maximum
type Auction struct {
	id        string
	itemRef   string
	seller    string
	startTime time.Time
	endTime   time.Time
	createdAt time.Time

	active      bool // cleared once by Finalize
	finalizedAt time.Time

	bids    *BidStore
	highest HighestBidTracker
}

// NewAuction validates the window against now and returns a live auction
func NewAuction(id, itemRef, seller string, startTime, endTime, now time.Time) (*Auction, error) {
	if id == "" || itemRef == "" {
		return nil, fmt.Errorf("new auction: %w - missing auction id or item reference", auctionerrors.ErrInvalidRequest)
	}
	if !startTime.After(now) {
		return nil, fmt.Errorf("new auction %s: %w - start time %s is not in the future", id, auctionerrors.ErrInvalidTimeWindow, startTime.Format(time.RFC3339))
	}
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("new auction %s: %w - end time must be after start time", id, auctionerrors.ErrInvalidTimeWindow)
	}

	return &Auction{
		id:        id,
		itemRef:   itemRef,
		seller:    seller,
		startTime: startTime,
		endTime:   endTime,
		createdAt: now,
		active:    true,
		bids:      NewBidStore(),
	}, nil
}

// ID returns the auction identifier
func (a *Auction) ID() string { return a.id }

// ItemRef returns the auctioned item reference
func (a *Auction) ItemRef() string { return a.itemRef }

// Window returns the bidding window
func (a *Auction) Window() (start, end time.Time) { return a.startTime, a.endTime }

// Phase derives the lifecycle stage at now
func (a *Auction) Phase(now time.Time) models.Phase {
	switch {
	case !a.active:
		return models.PhaseFinalized
	case now.Before(a.startTime):
		return models.PhasePending
	case !now.After(a.endTime):
		return models.PhaseActive
	default:
		return models.PhaseEnded
	}
}

// PlaceBid stores bidder's sealed bid during the active window
func (a *Auction) PlaceBid(now time.Time, bidder string, ciphertext, proof []byte, v bidcrypto.Verifier) (models.Bid, error) {
	if bidder == "" {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w - missing bidder identity", a.id, auctionerrors.ErrInvalidRequest)
	}
	if a.Phase(now) != models.PhaseActive {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w - phase is %s", a.id, auctionerrors.ErrInactiveWindow, a.Phase(now))
	}
	if !v.VerifyCommitment(ciphertext, proof) {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w", a.id, auctionerrors.ErrInvalidCiphertext)
	}

	bid := models.Bid{
		AuctionID:        a.id,
		Bidder:           bidder,
		Ciphertext:       ciphertext,
		CiphertextHandle: CiphertextHandle(ciphertext),
		SubmittedAt:      now,
	}
	if err := a.bids.Insert(bid); err != nil {
		return models.Bid{}, fmt.Errorf("place bid on %s: %w", a.id, err)
	}

	stored, _ := a.bids.Get(bidder)
	return stored, nil
}

// RevealBid verifies that amount opens bidder's stored ciphertext and folds
// it into the running maximum. Any caller may supply the opening.
func (a *Auction) RevealBid(now time.Time, bidder string, amount uint64, proof []byte, v bidcrypto.Verifier, policy LateRevealPolicy) (models.Bid, error) {
	if !now.After(a.endTime) {
		return models.Bid{}, fmt.Errorf("reveal bid on %s: %w", a.id, auctionerrors.ErrAuctionNotEnded)
	}
	late := !a.active
	if late && policy == LateRevealReject {
		return models.Bid{}, fmt.Errorf("reveal bid on %s: %w", a.id, auctionerrors.ErrAlreadyFinalized)
	}

	bid, ok := a.bids.Get(bidder)
	if !ok {
		return models.Bid{}, fmt.Errorf("reveal bid on %s for %s: %w", a.id, bidder, auctionerrors.ErrBidNotFound)
	}
	if bid.Decrypted {
		return models.Bid{}, fmt.Errorf("reveal bid on %s for %s: %w", a.id, bidder, auctionerrors.ErrAlreadyDecrypted)
	}
	if !a.bids.Eligible(bid.CiphertextHandle) || !v.VerifyOpening(bid.Ciphertext, amount, proof) {
		return models.Bid{}, fmt.Errorf("reveal bid on %s for %s: %w", a.id, bidder, auctionerrors.ErrInvalidProof)
	}

	revealed := a.bids.markDecrypted(bidder, amount, revealMeta{at: now, late: late})
	if !late {
		a.highest.Observe(bidder, amount)
	}
	return revealed, nil
}

// Finalize fixes the winner. It succeeds at most once.
func (a *Auction) Finalize(now time.Time) (models.AuctionResult, error) {
	if !now.After(a.endTime) {
		return models.AuctionResult{}, fmt.Errorf("finalize %s: %w", a.id, auctionerrors.ErrAuctionNotEnded)
	}
	if !a.active {
		return models.AuctionResult{}, fmt.Errorf("finalize %s: %w", a.id, auctionerrors.ErrAlreadyFinalized)
	}
	winner, amount, ok := a.highest.Highest()
	if !ok {
		return models.AuctionResult{}, fmt.Errorf("finalize %s: %w", a.id, auctionerrors.ErrNoValidBids)
	}

	a.active = false
	a.finalizedAt = now

	return models.AuctionResult{
		AuctionID:   a.id,
		Winner:      winner,
		Amount:      amount,
		FinalizedAt: now,
	}, nil
}

// Details returns a snapshot as seen at now
func (a *Auction) Details(now time.Time) models.AuctionDetails {
	bidder, amount, _ := a.highest.Highest()
	return models.AuctionDetails{
		AuctionID:        a.id,
		ItemRef:          a.itemRef,
		Seller:           a.seller,
		StartTime:        a.startTime,
		EndTime:          a.endTime,
		Phase:            a.Phase(now),
		HighestBidder:    bidder,
		HighestBidAmount: amount,
		Bidders:          a.bids.Bidders(),
		BidCount:         a.bids.Len(),
		RevealedCount:    a.bids.RevealedCount(),
		CreatedAt:        a.createdAt,
		FinalizedAt:      a.finalizedAt,
	}
}

// Bid returns a copy of bidder's bid
func (a *Auction) Bid(bidder string) (models.Bid, error) {
	b, ok := a.bids.Get(bidder)
	if !ok {
		return models.Bid{}, fmt.Errorf("get bid on %s for %s: %w", a.id, bidder, auctionerrors.ErrBidNotFound)
	}
	return b, nil
}

// Bids returns copies of all bids in submission order
func (a *Auction) Bids() []models.Bid {
	return a.bids.All()
}

// Bidders returns participating bidders in submission order
func (a *Auction) Bidders() []string {
	return a.bids.Bidders()
}
