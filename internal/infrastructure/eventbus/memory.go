package eventbus

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

const subscriberBuffer = 16

// MemoryBus is an in-process Bus for single-node deployments and
// tests.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]chan domain.Event
	logger zerolog.Logger
}

// NewMemoryBus creates a new MemoryBus.
func NewMemoryBus(logger zerolog.Logger) *MemoryBus {
	return &MemoryBus{
		subs:   make(map[string]map[*Subscription]chan domain.Event),
		logger: logger,
	}
}

// Publish delivers the event to every current subscriber of the
// event's trip. A subscriber that cannot keep up has the event dropped
// rather than blocking the publisher.
func (b *MemoryBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[event.TripID] {
		select {
		case ch <- event:
		default:
			b.logger.Warn().
				Str("trip_id", event.TripID).
				Str("event", event.Name).
				Msg("slow subscriber, event dropped")
		}
	}

	return nil
}

// Subscribe attaches a new subscriber to a trip channel. Only events
// published after this call are delivered.
func (b *MemoryBus) Subscribe(ctx context.Context, tripID string) (*Subscription, error) {
	ch := make(chan domain.Event, subscriberBuffer)

	sub := &Subscription{events: ch}

	var once sync.Once
	sub.close = func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[tripID], sub)
			if len(b.subs[tripID]) == 0 {
				delete(b.subs, tripID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	b.mu.Lock()
	if b.subs[tripID] == nil {
		b.subs[tripID] = make(map[*Subscription]chan domain.Event)
	}
	b.subs[tripID][sub] = ch
	b.mu.Unlock()

	return sub, nil
}
