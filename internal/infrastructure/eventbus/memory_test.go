package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/domain"
)

func recvEvent(t *testing.T, sub *Subscription) domain.Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return domain.Event{}
}

func TestMemoryBus_PublishDeliversInOrder(t *testing.T) {
	bus := NewMemoryBus(zerolog.Nop())
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "trip-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	names := []string{domain.EventExpenseAdded, domain.EventSettlementAdded, domain.EventMemberAdded}
	for _, name := range names {
		if err := bus.Publish(ctx, domain.Event{TripID: "trip-1", Name: name}); err != nil {
			t.Fatalf("publish %s: %v", name, err)
		}
	}

	for i, want := range names {
		event := recvEvent(t, sub)
		if event.Name != want {
			t.Errorf("event %d = %s, want %s", i, event.Name, want)
		}
	}
}

func TestMemoryBus_TripChannelsAreIsolated(t *testing.T) {
	bus := NewMemoryBus(zerolog.Nop())
	ctx := context.Background()

	subA, err := bus.Subscribe(ctx, "trip-a")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer subA.Close()

	subB, err := bus.Subscribe(ctx, "trip-b")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer subB.Close()

	if err := bus.Publish(ctx, domain.Event{TripID: "trip-a", Name: domain.EventExpenseAdded}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if event := recvEvent(t, subA); event.TripID != "trip-a" {
		t.Errorf("subscriber got event for trip %s", event.TripID)
	}

	select {
	case event := <-subB.Events():
		t.Errorf("trip-b subscriber received %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_NoReplayForLateSubscribers(t *testing.T) {
	bus := NewMemoryBus(zerolog.Nop())
	ctx := context.Background()

	if err := bus.Publish(ctx, domain.Event{TripID: "trip-1", Name: domain.EventExpenseAdded}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	sub, err := bus.Subscribe(ctx, "trip-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Errorf("late subscriber received replayed event %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_CloseDetachesSubscriber(t *testing.T) {
	bus := NewMemoryBus(zerolog.Nop())
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, "trip-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub.Close()
	sub.Close() // idempotent

	if _, ok := <-sub.Events(); ok {
		t.Error("expected events channel to be closed")
	}

	// Publishing after close must not panic or deliver.
	if err := bus.Publish(ctx, domain.Event{TripID: "trip-1", Name: domain.EventExpenseAdded}); err != nil {
		t.Fatalf("publish after close: %v", err)
	}
}
