package auction

import (
	"fmt"
	"time"

	"sealed-auction/internal/auctionerrors"
	"sealed-auction/internal/clock"
	bidcrypto "sealed-auction/internal/crypto"
	"sealed-auction/internal/engine"
	"sealed-auction/internal/models"
	"sealed-auction/internal/repository"
)

// Emitter publishes the notification for a committed mutation
type Emitter interface {
	Emit(ev models.Event) models.Event
}

// AuctionService defines the business logic for sealed-bid auctions
type AuctionService struct {
	repo     repository.AuctionDB
	verifier bidcrypto.Verifier
	clock    clock.Clock
	emitter  Emitter
	policy   engine.LateRevealPolicy
}

// Option customizes an AuctionService
type Option func(*AuctionService)

// WithLateRevealPolicy sets how reveals after finalization are handled
func WithLateRevealPolicy(p engine.LateRevealPolicy) Option {
	return func(s *AuctionService) {
		s.policy = p
	}
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, verifier bidcrypto.Verifier, clk clock.Clock, emitter Emitter, opts ...Option) *AuctionService {
	s := &AuctionService{
		repo:     repo,
		verifier: verifier,
		clock:    clk,
		emitter:  emitter,
		policy:   engine.LateRevealAudit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAuction registers a new auction opening at startTime
func (s *AuctionService) CreateAuction(seller, auctionID, itemRef string, startTime, endTime time.Time) (models.AuctionDetails, error) {
	now := s.clock.Now()

	auction, err := engine.NewAuction(auctionID, itemRef, seller, startTime.UTC(), endTime.UTC(), now)
	if err != nil {
		return models.AuctionDetails{}, fmt.Errorf("service: %w", err)
	}

	if err := s.repo.CreateAuction(auction); err != nil {
		return models.AuctionDetails{}, fmt.Errorf("service: failed to create auction %s: %w", auctionID, err)
	}

	start, end := auction.Window()
	s.emitter.Emit(models.Event{
		Type:      models.EventAuctionCreated,
		AuctionID: auctionID,
		Actor:     seller,
		ItemRef:   itemRef,
		StartTime: start,
		EndTime:   end,
		At:        now,
	})

	return auction.Details(now), nil
}

// PlaceBid stores bidder's sealed bid
func (s *AuctionService) PlaceBid(auctionID, bidder string, ciphertext, proof []byte) (models.Bid, error) {
	if auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidRequest)
	}

	var bid models.Bid
	err := s.repo.UpdateAuction(auctionID, func(a *engine.Auction) error {
		now := s.clock.Now()

		placed, err := a.PlaceBid(now, bidder, ciphertext, proof, s.verifier)
		if err != nil {
			return err
		}
		bid = placed

		s.emitter.Emit(models.Event{
			Type:             models.EventBidPlaced,
			AuctionID:        auctionID,
			Actor:            bidder,
			Bidder:           bidder,
			CiphertextHandle: placed.CiphertextHandle,
			At:               now,
		})
		return nil
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on auction %s by %s: %w", auctionID, bidder, err)
	}

	return bid, nil
}

// RevealBid submits an opening of bidder's sealed bid on behalf of actor
func (s *AuctionService) RevealBid(actor, auctionID, bidder string, amount uint64, proof []byte) (models.Bid, error) {
	if auctionID == "" || bidder == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auction ID or bidder", auctionerrors.ErrInvalidRequest)
	}

	var bid models.Bid
	err := s.repo.UpdateAuction(auctionID, func(a *engine.Auction) error {
		now := s.clock.Now()

		revealed, err := a.RevealBid(now, bidder, amount, proof, s.verifier, s.policy)
		if err != nil {
			return err
		}
		bid = revealed

		s.emitter.Emit(models.Event{
			Type:      models.EventBidRevealed,
			AuctionID: auctionID,
			Actor:     actor,
			Bidder:    bidder,
			Amount:    amount,
			At:        now,
		})
		return nil
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to reveal bid on auction %s for %s: %w", auctionID, bidder, err)
	}

	return bid, nil
}

// FinalizeAuction fixes the winner of an ended auction
func (s *AuctionService) FinalizeAuction(actor, auctionID string) (models.AuctionResult, error) {
	if auctionID == "" {
		return models.AuctionResult{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidRequest)
	}

	var result models.AuctionResult
	err := s.repo.UpdateAuction(auctionID, func(a *engine.Auction) error {
		now := s.clock.Now()

		res, err := a.Finalize(now)
		if err != nil {
			return err
		}
		result = res

		s.emitter.Emit(models.Event{
			Type:      models.EventAuctionFinalized,
			AuctionID: auctionID,
			Actor:     actor,
			Winner:    res.Winner,
			Amount:    res.Amount,
			At:        now,
		})
		return nil
	})
	if err != nil {
		return models.AuctionResult{}, fmt.Errorf("service: failed to finalize auction %s: %w", auctionID, err)
	}

	return result, nil
}

// GetAuctionDetails returns a snapshot of one auction
func (s *AuctionService) GetAuctionDetails(auctionID string) (models.AuctionDetails, error) {
	var details models.AuctionDetails
	err := s.repo.ViewAuction(auctionID, func(a *engine.Auction) {
		details = a.Details(s.clock.Now())
	})
	if err != nil {
		return models.AuctionDetails{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return details, nil
}

// GetBid returns bidder's bid on an auction
func (s *AuctionService) GetBid(auctionID, bidder string) (models.Bid, error) {
	var (
		bid    models.Bid
		bidErr error
	)
	err := s.repo.ViewAuction(auctionID, func(a *engine.Auction) {
		bid, bidErr = a.Bid(bidder)
	})
	if err == nil {
		err = bidErr
	}
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get bid on auction %s for %s: %w", auctionID, bidder, err)
	}
	return bid, nil
}

// ListBids returns all bids on an auction in submission order
func (s *AuctionService) ListBids(auctionID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.repo.ViewAuction(auctionID, func(a *engine.Auction) {
		bids = a.Bids()
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids on auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// ListBidders returns the bidders of an auction in submission order
func (s *AuctionService) ListBidders(auctionID string) ([]string, error) {
	var bidders []string
	err := s.repo.ViewAuction(auctionID, func(a *engine.Auction) {
		bidders = a.Bidders()
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bidders on auction %s: %w", auctionID, err)
	}
	return bidders, nil
}

// ListAuctionIDs returns every auction ID in creation order
func (s *AuctionService) ListAuctionIDs() []string {
	return s.repo.ListAuctionIDs()
}
