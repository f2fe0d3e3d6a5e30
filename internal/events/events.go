package events

import (
	"sync"

	"sealed-auction/internal/models"
	"sealed-auction/utils"
)

// Sink consumes committed notification events
type Sink interface {
	Publish(ev models.Event)
}

// Bus stamps events with an ID and a gap-free sequence number and hands
// them to every sink in order
type Bus struct {
	mu    sync.Mutex
	seq   uint64
	sinks []Sink
}

// NewBus creates a bus publishing to sinks
func NewBus(sinks ...Sink) *Bus {
	return &Bus{sinks: sinks}
}

// Emit stamps ev and publishes it, returning the stamped event
func (b *Bus) Emit(ev models.Event) models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	ev.Sequence = b.seq
	ev.EventID = utils.GenerateID()

	for _, s := range b.sinks {
		s.Publish(ev)
	}
	return ev
}

// Feed retains the most recent events for polling consumers
type Feed struct {
	mu       sync.RWMutex
	events   []models.Event
	capacity int
}

// NewFeed creates a feed keeping at most capacity events; capacity <= 0 keeps all
func NewFeed(capacity int) *Feed {
	return &Feed{capacity: capacity}
}

// Publish appends ev, evicting the oldest event when full
func (f *Feed) Publish(ev models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, ev)
	if f.capacity > 0 && len(f.events) > f.capacity {
		f.events = append([]models.Event(nil), f.events[len(f.events)-f.capacity:]...)
	}
}

// Since returns retained events with a sequence number greater than seq
func (f *Feed) Since(seq uint64) []models.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.Event, 0)
	for _, ev := range f.events {
		if ev.Sequence > seq {
			out = append(out, ev)
		}
	}
	return out
}

// LogSink writes every event to the structured log
type LogSink struct{}

// Publish logs ev at info level
func (LogSink) Publish(ev models.Event) {
	fields := map[string]any{
		"event_id":   ev.EventID,
		"sequence":   ev.Sequence,
		"auction_id": ev.AuctionID,
		"actor":      ev.Actor,
	}

	switch ev.Type {
	case models.EventAuctionCreated:
		fields["item_ref"] = ev.ItemRef
		fields["start_time"] = ev.StartTime
		fields["end_time"] = ev.EndTime
	case models.EventBidPlaced:
		fields["bidder"] = ev.Bidder
		fields["ciphertext_handle"] = ev.CiphertextHandle
	case models.EventBidRevealed:
		fields["bidder"] = ev.Bidder
		fields["amount"] = ev.Amount
	case models.EventAuctionFinalized:
		fields["winner"] = ev.Winner
		fields["amount"] = ev.Amount
	}

	utils.Info(string(ev.Type), fields)
}
