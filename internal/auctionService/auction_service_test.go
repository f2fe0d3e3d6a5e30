package auction

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"sealed-auction/internal/auctionerrors"
	"sealed-auction/internal/clock"
	bidcrypto "sealed-auction/internal/crypto"
	"sealed-auction/internal/crypto/pedersen"
	"sealed-auction/internal/engine"
	"sealed-auction/internal/events"
	"sealed-auction/internal/models"
	"sealed-auction/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return baseTime.Add(time.Duration(seconds) * time.Second)
}

type fixture struct {
	svc    *AuctionService
	clock  *clock.Fake
	feed   *events.Feed
	scheme *pedersen.Scheme
}

// newFixture wires a service over the in-memory registry and the Pedersen
// verifier, with the clock at T-10
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	scheme, err := pedersen.New(pedersen.DefaultDomain)
	require.NoError(t, err)

	clk := clock.NewFake(at(-10))
	feed := events.NewFeed(0)
	svc := NewAuctionService(repository.NewMemoryRepo(), scheme, clk, events.NewBus(feed), opts...)

	return &fixture{svc: svc, clock: clk, feed: feed, scheme: scheme}
}

func (f *fixture) seal(t *testing.T, amount uint64) *pedersen.Sealed {
	t.Helper()
	sealed, err := f.scheme.Seal(amount)
	require.NoError(t, err)
	return sealed
}

func (f *fixture) eventTypes() []models.EventType {
	var types []models.EventType
	for _, ev := range f.feed.Since(0) {
		types = append(types, ev.Type)
	}
	return types
}

// Tests CreateAuction
func TestAuctionService_CreateAuction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		auctionID     string
		itemRef       string
		start, end    time.Time
		expectedError error
	}{
		{name: "valid", auctionID: "A1", itemRef: "item", start: at(0), end: at(100)},
		{name: "start_in_past", auctionID: "A1", itemRef: "item", start: at(-20), end: at(100), expectedError: auctionerrors.ErrInvalidTimeWindow},
		{name: "start_now", auctionID: "A1", itemRef: "item", start: at(-10), end: at(100), expectedError: auctionerrors.ErrInvalidTimeWindow},
		{name: "end_before_start", auctionID: "A1", itemRef: "item", start: at(50), end: at(40), expectedError: auctionerrors.ErrInvalidTimeWindow},
		{name: "end_equals_start", auctionID: "A1", itemRef: "item", start: at(50), end: at(50), expectedError: auctionerrors.ErrInvalidTimeWindow},
		{name: "empty_id", auctionID: "", itemRef: "item", start: at(0), end: at(100), expectedError: auctionerrors.ErrInvalidRequest},
		{name: "empty_item", auctionID: "A1", itemRef: "", start: at(0), end: at(100), expectedError: auctionerrors.ErrInvalidRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			details, err := f.svc.CreateAuction("seller", tc.auctionID, tc.itemRef, tc.start, tc.end)
			if tc.expectedError != nil {
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				require.Empty(t, f.svc.ListAuctionIDs())
				require.Empty(t, f.feed.Since(0))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.auctionID, details.AuctionID)
			require.Equal(t, models.PhasePending, details.Phase)
			require.Equal(t, "seller", details.Seller)
			require.Empty(t, details.HighestBidder)

			evs := f.feed.Since(0)
			require.Len(t, evs, 1)
			require.Equal(t, models.EventAuctionCreated, evs[0].Type)
			require.Equal(t, tc.itemRef, evs[0].ItemRef)
			require.Equal(t, tc.start, evs[0].StartTime)
			require.Equal(t, tc.end, evs[0].EndTime)
		})
	}

	t.Run("duplicate_id", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
		require.NoError(t, err)
		_, err = f.svc.CreateAuction("s", "A1", "other", at(5), at(200))
		require.True(t, errors.Is(err, auctionerrors.ErrAlreadyExists))

		details, err := f.svc.GetAuctionDetails("A1")
		require.NoError(t, err)
		require.Equal(t, "item", details.ItemRef)
		require.Len(t, f.feed.Since(0), 1)
	})
}

// Tests PlaceBid
func TestAuctionService_PlaceBid(t *testing.T) {
	t.Parallel()

	t.Run("window_and_validation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
		require.NoError(t, err)

		sealed := f.seal(t, 50)

		// pending
		_, err = f.svc.PlaceBid("A1", "X", sealed.Ciphertext, sealed.CommitmentProof)
		require.True(t, errors.Is(err, auctionerrors.ErrInactiveWindow))

		f.clock.Set(at(1))

		_, err = f.svc.PlaceBid("missing", "X", sealed.Ciphertext, sealed.CommitmentProof)
		require.True(t, errors.Is(err, auctionerrors.ErrNotFound))

		// proof made for another ciphertext
		other := f.seal(t, 50)
		_, err = f.svc.PlaceBid("A1", "X", sealed.Ciphertext, other.CommitmentProof)
		require.True(t, errors.Is(err, auctionerrors.ErrInvalidCiphertext))
		_, err = f.svc.GetBid("A1", "X")
		require.True(t, errors.Is(err, auctionerrors.ErrNotFound), "invalid ciphertext leaves no bid")

		bid, err := f.svc.PlaceBid("A1", "X", sealed.Ciphertext, sealed.CommitmentProof)
		require.NoError(t, err)
		require.False(t, bid.Decrypted)
		require.Equal(t, at(1), bid.SubmittedAt)

		_, err = f.svc.PlaceBid("A1", "X", other.Ciphertext, other.CommitmentProof)
		require.True(t, errors.Is(err, auctionerrors.ErrDuplicateBid))

		stored, err := f.svc.GetBid("A1", "X")
		require.NoError(t, err)
		require.Equal(t, sealed.Ciphertext, stored.Ciphertext, "ciphertext is write-once")

		f.clock.Set(at(101))
		_, err = f.svc.PlaceBid("A1", "Y", other.Ciphertext, other.CommitmentProof)
		require.True(t, errors.Is(err, auctionerrors.ErrInactiveWindow))

		require.Equal(t, []models.EventType{models.EventAuctionCreated, models.EventBidPlaced}, f.eventTypes())
		placed := f.feed.Since(1)[0]
		require.Equal(t, "X", placed.Bidder)
		require.Equal(t, engine.CiphertextHandle(sealed.Ciphertext), placed.CiphertextHandle)
	})

	t.Run("empty_auction_id", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.PlaceBid("", "X", nil, nil)
		require.True(t, errors.Is(err, auctionerrors.ErrInvalidRequest))
	})

	t.Run("concurrent_bidders", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
		require.NoError(t, err)
		f.clock.Set(at(1))

		const n = 20
		sealed := make([]*pedersen.Sealed, n)
		for i := range sealed {
			sealed[i] = f.seal(t, uint64(i))
		}

		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.svc.PlaceBid("A1", fmt.Sprintf("bidder-%d", i), sealed[i].Ciphertext, sealed[i].CommitmentProof)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		bidders, err := f.svc.ListBidders("A1")
		require.NoError(t, err)
		require.Len(t, bidders, n)
	})
}

// Tests RevealBid
func TestAuctionService_RevealBid(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
	require.NoError(t, err)
	f.clock.Set(at(1))
	sealed := f.seal(t, 50)
	_, err = f.svc.PlaceBid("A1", "X", sealed.Ciphertext, sealed.CommitmentProof)
	require.NoError(t, err)

	_, err = f.svc.RevealBid("X", "A1", "X", 50, sealed.Opening.Proof())
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotEnded))

	f.clock.Set(at(101))

	_, err = f.svc.RevealBid("X", "missing", "X", 50, sealed.Opening.Proof())
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	_, err = f.svc.RevealBid("X", "A1", "nobody", 50, sealed.Opening.Proof())
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))

	_, err = f.svc.RevealBid("X", "A1", "X", 49, sealed.Opening.Proof())
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidProof))
	bid, err := f.svc.GetBid("A1", "X")
	require.NoError(t, err)
	require.False(t, bid.Decrypted, "invalid proof leaves decrypted=false")

	// any party may supply the opening
	bid, err = f.svc.RevealBid("someone-else", "A1", "X", 50, sealed.Opening.Proof())
	require.NoError(t, err)
	require.True(t, bid.Decrypted)
	require.Equal(t, uint64(50), bid.RevealedAmount)

	_, err = f.svc.RevealBid("X", "A1", "X", 50, sealed.Opening.Proof())
	require.True(t, errors.Is(err, auctionerrors.ErrAlreadyDecrypted))

	revealed := f.feed.Since(2)
	require.Len(t, revealed, 1)
	require.Equal(t, models.EventBidRevealed, revealed[0].Type)
	require.Equal(t, "someone-else", revealed[0].Actor)
	require.Equal(t, "X", revealed[0].Bidder)
	require.Equal(t, uint64(50), revealed[0].Amount)
}

// Max over any reveal order, first revealer wins ties
func TestAuctionService_HighestBidAcrossRevealOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		amounts    map[string]uint64
		order      []string
		wantWinner string
		wantAmount uint64
	}{
		{name: "ascending", amounts: map[string]uint64{"a": 10, "b": 20, "c": 30}, order: []string{"a", "b", "c"}, wantWinner: "c", wantAmount: 30},
		{name: "descending", amounts: map[string]uint64{"a": 10, "b": 20, "c": 30}, order: []string{"c", "b", "a"}, wantWinner: "c", wantAmount: 30},
		{name: "tie_first_revealer", amounts: map[string]uint64{"a": 30, "b": 30, "c": 5}, order: []string{"b", "c", "a"}, wantWinner: "b", wantAmount: 30},
		{name: "partial_reveals", amounts: map[string]uint64{"a": 99, "b": 20}, order: []string{"b"}, wantWinner: "b", wantAmount: 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			_, err := f.svc.CreateAuction("s", "A", "item", at(0), at(100))
			require.NoError(t, err)
			f.clock.Set(at(1))

			openings := make(map[string]*pedersen.Sealed)
			for bidder, amount := range tc.amounts {
				sealed := f.seal(t, amount)
				openings[bidder] = sealed
				_, err := f.svc.PlaceBid("A", bidder, sealed.Ciphertext, sealed.CommitmentProof)
				require.NoError(t, err)
			}

			f.clock.Set(at(150))
			for _, bidder := range tc.order {
				_, err := f.svc.RevealBid(bidder, "A", bidder, tc.amounts[bidder], openings[bidder].Opening.Proof())
				require.NoError(t, err)
			}

			res, err := f.svc.FinalizeAuction("anyone", "A")
			require.NoError(t, err)
			require.Equal(t, tc.wantWinner, res.Winner)
			require.Equal(t, tc.wantAmount, res.Amount)
		})
	}
}

// Tests FinalizeAuction
func TestAuctionService_FinalizeAuction(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
	require.NoError(t, err)

	_, err = f.svc.FinalizeAuction("s", "missing")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))

	_, err = f.svc.FinalizeAuction("s", "A1")
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotEnded))

	f.clock.Set(at(1))
	sealed := f.seal(t, 7)
	_, err = f.svc.PlaceBid("A1", "X", sealed.Ciphertext, sealed.CommitmentProof)
	require.NoError(t, err)

	f.clock.Set(at(101))
	_, err = f.svc.FinalizeAuction("s", "A1")
	require.True(t, errors.Is(err, auctionerrors.ErrNoValidBids))

	_, err = f.svc.RevealBid("X", "A1", "X", 7, sealed.Opening.Proof())
	require.NoError(t, err)

	res, err := f.svc.FinalizeAuction("s", "A1")
	require.NoError(t, err)
	require.Equal(t, "X", res.Winner)
	require.Equal(t, uint64(7), res.Amount)
	require.Equal(t, at(101), res.FinalizedAt)

	_, err = f.svc.FinalizeAuction("s", "A1")
	require.True(t, errors.Is(err, auctionerrors.ErrAlreadyFinalized))

	details, err := f.svc.GetAuctionDetails("A1")
	require.NoError(t, err)
	require.Equal(t, models.PhaseFinalized, details.Phase)

	evs := f.feed.Since(0)
	last := evs[len(evs)-1]
	require.Equal(t, models.EventAuctionFinalized, last.Type)
	require.Equal(t, "X", last.Winner)
	require.Equal(t, uint64(7), last.Amount)
}

// Window [T, T+100]; X seals 50 at T+1, Y seals 80 at T+2, both reveal at T+101
func TestAuctionService_RoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateAuction("seller", "A1", "painting", at(0), at(100))
	require.NoError(t, err)

	x := f.seal(t, 50)
	y := f.seal(t, 80)

	f.clock.Set(at(1))
	_, err = f.svc.PlaceBid("A1", "X", x.Ciphertext, x.CommitmentProof)
	require.NoError(t, err)
	f.clock.Set(at(2))
	_, err = f.svc.PlaceBid("A1", "Y", y.Ciphertext, y.CommitmentProof)
	require.NoError(t, err)

	f.clock.Set(at(101))
	_, err = f.svc.RevealBid("X", "A1", "X", 50, x.Opening.Proof())
	require.NoError(t, err)
	details, err := f.svc.GetAuctionDetails("A1")
	require.NoError(t, err)
	require.Equal(t, "X", details.HighestBidder)
	require.Equal(t, uint64(50), details.HighestBidAmount)

	_, err = f.svc.RevealBid("Y", "A1", "Y", 80, y.Opening.Proof())
	require.NoError(t, err)
	details, err = f.svc.GetAuctionDetails("A1")
	require.NoError(t, err)
	require.Equal(t, "Y", details.HighestBidder)
	require.Equal(t, uint64(80), details.HighestBidAmount)
	require.Equal(t, []string{"X", "Y"}, details.Bidders)

	res, err := f.svc.FinalizeAuction("X", "A1")
	require.NoError(t, err)
	require.Equal(t, "Y", res.Winner)
	require.Equal(t, uint64(80), res.Amount)

	_, err = f.svc.FinalizeAuction("X", "A1")
	require.True(t, errors.Is(err, auctionerrors.ErrAlreadyFinalized))

	require.Equal(t, []models.EventType{
		models.EventAuctionCreated,
		models.EventBidPlaced,
		models.EventBidPlaced,
		models.EventBidRevealed,
		models.EventBidRevealed,
		models.EventAuctionFinalized,
	}, f.eventTypes())

	bids, err := f.svc.ListBids("A1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, []string{"A1"}, f.svc.ListAuctionIDs())
}

// Tests both late reveal policies
func TestAuctionService_LateRevealPolicy(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, policy engine.LateRevealPolicy) (*fixture, error) {
		f := newFixture(t, WithLateRevealPolicy(policy))

		_, err := f.svc.CreateAuction("s", "A1", "item", at(0), at(100))
		require.NoError(t, err)

		x := f.seal(t, 50)
		y := f.seal(t, 80)
		f.clock.Set(at(1))
		_, err = f.svc.PlaceBid("A1", "X", x.Ciphertext, x.CommitmentProof)
		require.NoError(t, err)
		_, err = f.svc.PlaceBid("A1", "Y", y.Ciphertext, y.CommitmentProof)
		require.NoError(t, err)

		f.clock.Set(at(101))
		_, err = f.svc.RevealBid("X", "A1", "X", 50, x.Opening.Proof())
		require.NoError(t, err)
		_, err = f.svc.FinalizeAuction("s", "A1")
		require.NoError(t, err)

		f.clock.Set(at(102))
		_, lateErr := f.svc.RevealBid("Y", "A1", "Y", 80, y.Opening.Proof())
		return f, lateErr
	}

	t.Run("audit", func(t *testing.T) {
		t.Parallel()
		f, err := run(t, engine.LateRevealAudit)
		require.NoError(t, err)

		bid, err := f.svc.GetBid("A1", "Y")
		require.NoError(t, err)
		require.True(t, bid.Decrypted)
		require.True(t, bid.LateReveal)

		details, err := f.svc.GetAuctionDetails("A1")
		require.NoError(t, err)
		require.Equal(t, "X", details.HighestBidder, "outcome is fixed at finalization")
		require.Equal(t, uint64(50), details.HighestBidAmount)

		evs := f.feed.Since(0)
		require.Equal(t, models.EventBidRevealed, evs[len(evs)-1].Type)
	})

	t.Run("reject", func(t *testing.T) {
		t.Parallel()
		f, err := run(t, engine.LateRevealReject)
		require.True(t, errors.Is(err, auctionerrors.ErrAlreadyFinalized))

		bid, err := f.svc.GetBid("A1", "Y")
		require.NoError(t, err)
		require.False(t, bid.Decrypted)

		evs := f.feed.Since(0)
		require.Equal(t, models.EventAuctionFinalized, evs[len(evs)-1].Type)
	})
}

// Tests read operations on unknown auctions
func TestAuctionService_ReadsNotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.GetAuctionDetails("nope")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	_, err = f.svc.GetBid("nope", "X")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	_, err = f.svc.ListBids("nope")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	_, err = f.svc.ListBidders("nope")
	require.True(t, errors.Is(err, auctionerrors.ErrNotFound))
	require.Empty(t, f.svc.ListAuctionIDs())
}

// Tests error propagation with mocked collaborators
func TestAuctionService_WithMocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	mockVerifier := bidcrypto.NewMockVerifier(ctrl)
	clk := clock.NewFake(at(-10))
	feed := events.NewFeed(0)
	service := NewAuctionService(mockRepo, mockVerifier, clk, events.NewBus(feed))

	t.Run("repo_create_fails", func(t *testing.T) {
		mockRepo.EXPECT().CreateAuction(gomock.Any()).Return(errors.New("repo write failed"))

		_, err := service.CreateAuction("s", "A1", "item", at(0), at(100))
		require.Error(t, err)
		require.Empty(t, feed.Since(0), "no event for a failed create")
	})

	t.Run("verifier_rejects_commitment", func(t *testing.T) {
		auction, err := engine.NewAuction("A2", "item", "s", at(0), at(100), at(-10))
		require.NoError(t, err)

		clk.Set(at(5))
		mockRepo.EXPECT().
			UpdateAuction("A2", gomock.Any()).
			DoAndReturn(func(_ string, fn func(*engine.Auction) error) error {
				return fn(auction)
			})
		mockVerifier.EXPECT().VerifyCommitment([]byte("ct"), []byte("proof")).Return(false)

		_, err = service.PlaceBid("A2", "X", []byte("ct"), []byte("proof"))
		require.True(t, errors.Is(err, auctionerrors.ErrInvalidCiphertext))
		require.Empty(t, auction.Bidders())
	})

	t.Run("list_ids_delegates", func(t *testing.T) {
		mockRepo.EXPECT().ListAuctionIDs().Return([]string{"b", "a"})
		require.Equal(t, []string{"b", "a"}, service.ListAuctionIDs())
	})
}
