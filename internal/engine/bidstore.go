package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"sealed-auction/internal/auctionerrors"
	"sealed-auction/internal/models"
)

// CiphertextHandle returns the stable public name of a ciphertext
func CiphertextHandle(ciphertext []byte) string {
	sum := sha256.Sum256(ciphertext)
	return hex.EncodeToString(sum[:])
}

// BidStore holds at most one sealed bid per bidder, in insertion order.
// It is not safe for concurrent use; the owning Auction is mutated under the
// registry's lock.
type BidStore struct {
	bids     map[string]*models.Bid // key: bidder -> bid
	order    []string               // bidders in insertion order
	eligible map[string]struct{}    // ciphertext handles open to public reveal
}

// NewBidStore creates an empty store
func NewBidStore() *BidStore {
	return &BidStore{
		bids:     make(map[string]*models.Bid),
		eligible: make(map[string]struct{}),
	}
}

// Insert stores bid and registers its ciphertext for opening verification.
// A second bid from the same bidder is rejected, never overwritten.
func (s *BidStore) Insert(bid models.Bid) error {
	if _, ok := s.bids[bid.Bidder]; ok {
		return fmt.Errorf("insert bid for %s: %w", bid.Bidder, auctionerrors.ErrDuplicateBid)
	}

	stored := cloneBid(bid)
	s.bids[bid.Bidder] = &stored
	s.order = append(s.order, bid.Bidder)
	s.eligible[bid.CiphertextHandle] = struct{}{}
	return nil
}

// Has reports whether bidder already has a bid
func (s *BidStore) Has(bidder string) bool {
	_, ok := s.bids[bidder]
	return ok
}

// Get returns a copy of bidder's bid
func (s *BidStore) Get(bidder string) (models.Bid, bool) {
	b, ok := s.bids[bidder]
	if !ok {
		return models.Bid{}, false
	}
	return cloneBid(*b), true
}

// Eligible reports whether handle names a ciphertext accepted by Insert
func (s *BidStore) Eligible(handle string) bool {
	_, ok := s.eligible[handle]
	return ok
}

// Bidders returns bidder identities in insertion order
func (s *BidStore) Bidders() []string {
	return append([]string(nil), s.order...)
}

// All returns copies of every bid in insertion order
func (s *BidStore) All() []models.Bid {
	out := make([]models.Bid, 0, len(s.order))
	for _, bidder := range s.order {
		out = append(out, cloneBid(*s.bids[bidder]))
	}
	return out
}

// Len returns the number of stored bids
func (s *BidStore) Len() int {
	return len(s.order)
}

// RevealedCount returns the number of decrypted bids
func (s *BidStore) RevealedCount() int {
	n := 0
	for _, b := range s.bids {
		if b.Decrypted {
			n++
		}
	}
	return n
}

// markDecrypted records a verified reveal. The caller has already checked
// that the bid exists and is still sealed.
func (s *BidStore) markDecrypted(bidder string, amount uint64, reveal revealMeta) models.Bid {
	b := s.bids[bidder]
	b.Decrypted = true
	b.RevealedAmount = amount
	b.RevealedAt = reveal.at
	b.LateReveal = reveal.late
	return cloneBid(*b)
}

type revealMeta struct {
	at   time.Time
	late bool
}

func cloneBid(b models.Bid) models.Bid {
	b.Ciphertext = append([]byte(nil), b.Ciphertext...)
	return b
}
