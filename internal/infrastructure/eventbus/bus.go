package eventbus

import (
	"context"

	"github.com/iho/tripledger/internal/domain"
)

// Bus fans trip events out to live subscribers. Delivery is at most
// once: only subscribers attached at publish time receive an event,
// and there is no replay for late joiners. Events are invalidation
// hints, so a missed one is repaired by the subscriber's next fetch.
type Bus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(ctx context.Context, tripID string) (*Subscription, error)
}

// Subscription is a live feed of one trip's events. Close releases it;
// Events is closed afterwards.
type Subscription struct {
	events chan domain.Event
	close  func()
}

// Events returns the channel events arrive on.
func (s *Subscription) Events() <-chan domain.Event {
	return s.events
}

// Close detaches the subscription from its trip channel.
func (s *Subscription) Close() {
	s.close()
}

// Channel returns the bus channel name for a trip.
func Channel(tripID string) string {
	return "trip:" + tripID
}
