package repository

import (
	"fmt"
	"sync"

	"sealed-auction/internal/auctionerrors"
	"sealed-auction/internal/engine"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB is the auction registry. Mutations passed to UpdateAuction run
// one at a time; views see the latest committed state.
type AuctionDB interface {
	CreateAuction(auction *engine.Auction) error
	UpdateAuction(auctionID string, fn func(*engine.Auction) error) error
	ViewAuction(auctionID string, fn func(*engine.Auction)) error
	ListAuctionIDs() []string
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]*engine.Auction // key: auctionID -> value: auction
	order    []string                   // auction IDs in creation order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]*engine.Auction),
	}
}

// CreateAuction registers a new auction under its ID
func (r *MemoryRepo) CreateAuction(auction *engine.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.ID()]; ok {
		return fmt.Errorf("create auction %s: %w", auction.ID(), auctionerrors.ErrAlreadyExists)
	}

	r.auctions[auction.ID()] = auction
	r.order = append(r.order, auction.ID())
	return nil
}

// UpdateAuction runs fn with exclusive access to the auction. fn must leave
// the auction unchanged when it returns an error.
func (r *MemoryRepo) UpdateAuction(auctionID string, fn func(*engine.Auction) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	return fn(auction)
}

// ViewAuction runs fn with shared access to the auction. fn must not mutate it.
func (r *MemoryRepo) ViewAuction(auctionID string, fn func(*engine.Auction)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("view auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	fn(auction)
	return nil
}

// ListAuctionIDs returns auction IDs in creation order
func (r *MemoryRepo) ListAuctionIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
