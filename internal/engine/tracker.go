package engine

// HighestBidTracker folds revealed amounts into a running maximum. The first
// observation always seeds it; afterwards only a strictly greater amount
// displaces the incumbent, so ties go to the earliest revealer.
type HighestBidTracker struct {
	bidder string
	amount uint64
	seeded bool
}

// Observe folds one reveal and reports whether it became the highest bid
func (t *HighestBidTracker) Observe(bidder string, amount uint64) bool {
	if t.seeded && amount <= t.amount {
		return false
	}
	t.bidder = bidder
	t.amount = amount
	t.seeded = true
	return true
}

// Highest returns the current maximum; ok is false before any reveal
func (t *HighestBidTracker) Highest() (bidder string, amount uint64, ok bool) {
	return t.bidder, t.amount, t.seeded
}
