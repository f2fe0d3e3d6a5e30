package auctionerrors

import (
	"errors"
	"fmt"
)

// Registry-level errors
var (
	ErrAlreadyExists = errors.New("auction already exists")
	ErrNotFound      = errors.New("not found")
	ErrBidNotFound   = fmt.Errorf("bid %w", ErrNotFound)
)

// Auction lifecycle errors
var (
	ErrInvalidTimeWindow = errors.New("invalid auction time window")
	ErrInactiveWindow    = errors.New("auction is not accepting bids")
	ErrAuctionNotEnded   = errors.New("auction has not ended")
	ErrAlreadyFinalized  = errors.New("auction already finalized")
	ErrNoValidBids       = errors.New("no revealed bids")
)

// Bid and proof errors
var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrDuplicateBid      = errors.New("bidder already placed a bid")
	ErrAlreadyDecrypted  = errors.New("bid already decrypted")
	ErrInvalidProof      = errors.New("invalid opening proof")
)

// ErrInvalidRequest reports missing or malformed caller input.
var ErrInvalidRequest = errors.New("invalid request")
