package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

// envelope is the wire form of an event on a Redis channel.
type envelope struct {
	TripID  string          `json:"trip_id"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RedisBus is a Bus backed by Redis Pub/Sub, one channel per trip.
// Pub/Sub gives exactly the semantics a live invalidation feed needs:
// fire-and-forget fan-out with no retention.
type RedisBus struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisBus creates a new RedisBus.
func NewRedisBus(client *redis.Client, logger zerolog.Logger) *RedisBus {
	return &RedisBus{client: client, logger: logger}
}

// Publish broadcasts the event on the trip's channel.
func (b *RedisBus) Publish(ctx context.Context, event domain.Event) error {
	env := envelope{TripID: event.TripID, Name: event.Name}

	if event.Payload != nil {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}
		env.Payload = payload
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, Channel(event.TripID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe opens a Pub/Sub subscription on the trip's channel and
// decodes incoming messages until Close is called.
func (b *RedisBus) Subscribe(ctx context.Context, tripID string) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, Channel(tripID))

	// Force the SUBSCRIBE round trip so a broken connection surfaces
	// here instead of as a silent dead feed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel(tripID), err)
	}

	ch := make(chan domain.Event, subscriberBuffer)
	sub := &Subscription{events: ch}

	var once sync.Once
	sub.close = func() {
		once.Do(func() {
			pubsub.Close()
		})
	}

	go func() {
		defer close(ch)
		for msg := range pubsub.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warn().Err(err).
					Str("channel", msg.Channel).
					Msg("malformed event dropped")
				continue
			}

			event := domain.Event{TripID: env.TripID, Name: env.Name}
			if len(env.Payload) > 0 {
				event.Payload = env.Payload
			}

			select {
			case ch <- event:
			default:
				b.logger.Warn().
					Str("trip_id", env.TripID).
					Str("event", env.Name).
					Msg("slow subscriber, event dropped")
			}
		}
	}()

	return sub, nil
}
