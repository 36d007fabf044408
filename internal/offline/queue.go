package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Queue errors.
var (
	ErrActionNotFound   = errors.New("queued action not found")
	ErrActionInFlight   = errors.New("action is no longer cancellable")
	ErrDrainInterrupted = errors.New("drain interrupted")
)

// Queue is the client-side durable FIFO of unacknowledged mutations.
// Draining is strictly sequential with one action in flight at a time,
// so a queued create always reaches the server before anything queued
// after it that may reference it.
type Queue struct {
	mu      sync.Mutex
	actions []*Action

	journal *Journal
	sender  Sender
	idGen   func() string
	logger  zerolog.Logger

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// Config for Queue.
type Config struct {
	Journal *Journal
	Sender  Sender
	IDGen   func() string
	Logger  zerolog.Logger

	MaxRetries      int           // Attempts per action within one drain
	InitialInterval time.Duration // First backoff delay
	MaxInterval     time.Duration // Backoff delay cap
}

// NewQueue creates a queue and restores any journaled actions. An
// action journaled as attempting was cut off mid-flight; it is demoted
// to retryable so the next drain replays it under the same
// idempotency key.
func NewQueue(cfg Config) (*Queue, error) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 30 * time.Second
	}

	q := &Queue{
		journal:         cfg.Journal,
		sender:          cfg.Sender,
		idGen:           cfg.IDGen,
		logger:          cfg.Logger,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
	}

	actions, err := cfg.Journal.Load()
	if err != nil {
		return nil, err
	}

	for _, a := range actions {
		if a.State == StateAttempting {
			a.State = StateFailedRetryable
		}
		if a.Pending() {
			q.actions = append(q.actions, a)
		}
	}

	return q, nil
}

// Enqueue journals a new action at the tail of the queue.
func (q *Queue) Enqueue(method, target string, payload any) (*Action, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		raw = data
	}

	action := &Action{
		ID:         q.idGen(),
		Method:     method,
		Target:     target,
		Payload:    raw,
		State:      StateCreated,
		EnqueuedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.actions = append(q.actions, action)
	if err := q.journal.Save(q.actions); err != nil {
		q.actions = q.actions[:len(q.actions)-1]
		return nil, err
	}

	return action, nil
}

// Cancel removes an action that has not started yet. Once an action is
// attempting it runs to completion or failure.
func (q *Queue) Cancel(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.actions {
		if a.ID != id {
			continue
		}
		if a.State != StateCreated {
			return ErrActionInFlight
		}
		q.actions = append(q.actions[:i], q.actions[i+1:]...)
		return q.journal.Save(q.actions)
	}

	return ErrActionNotFound
}

// Pending returns a snapshot of the queued actions in order.
func (q *Queue) Pending() []*Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*Action, len(q.actions))
	copy(out, q.actions)
	return out
}

// DrainResult summarizes one drain pass.
type DrainResult struct {
	Applied  int
	Terminal int
	Stalled  bool // head action still retryable, queue blocked
}

// Drain replays queued actions FIFO, one at a time. Each action gets
// up to MaxRetries attempts with exponential backoff; if the head
// still fails with a retryable error the drain stops so order is
// preserved for the next trigger. Terminal failures are surfaced,
// removed and never retried.
func (q *Queue) Drain(ctx context.Context) (DrainResult, error) {
	var result DrainResult

	for {
		action := q.head()
		if action == nil {
			return result, nil
		}

		q.transition(action, StateAttempting, "")

		err := q.attempt(ctx, action)
		switch {
		case err == nil:
			q.transition(action, StateApplied, "")
			q.dequeue(action.ID)
			result.Applied++

		case IsTerminal(err):
			q.logger.Warn().Err(err).
				Str("action_id", action.ID).
				Str("target", action.Target).
				Msg("action rejected, dropped from queue")
			q.transition(action, StateFailedTerminal, err.Error())
			q.dequeue(action.ID)
			result.Terminal++

		case ctx.Err() != nil:
			q.transition(action, StateFailedRetryable, err.Error())
			return result, fmt.Errorf("%w: %v", ErrDrainInterrupted, ctx.Err())

		default:
			q.transition(action, StateFailedRetryable, err.Error())
			result.Stalled = true
			return result, nil
		}
	}
}

// attempt sends one action with bounded retries on network errors.
func (q *Queue) attempt(ctx context.Context, action *Action) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = q.initialInterval
	b.MaxInterval = q.maxInterval

	attempts := 0

	return backoff.Retry(func() error {
		attempts++
		q.mu.Lock()
		action.Attempts++
		q.mu.Unlock()

		err := q.sender.Send(ctx, action)
		if err == nil {
			return nil
		}

		if IsTerminal(err) {
			return backoff.Permanent(err)
		}
		if attempts >= q.maxRetries {
			return backoff.Permanent(err)
		}

		q.logger.Debug().Err(err).
			Str("action_id", action.ID).
			Int("attempt", attempts).
			Msg("action attempt failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func (q *Queue) head() *Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.actions) == 0 {
		return nil
	}
	return q.actions[0]
}

func (q *Queue) transition(action *Action, state, lastError string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	action.State = state
	action.LastError = lastError
	if err := q.journal.Save(q.actions); err != nil {
		q.logger.Error().Err(err).
			Str("action_id", action.ID).
			Msg("failed to journal state change")
	}
}

func (q *Queue) dequeue(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.actions {
		if a.ID == id {
			q.actions = append(q.actions[:i], q.actions[i+1:]...)
			break
		}
	}
	if err := q.journal.Save(q.actions); err != nil {
		q.logger.Error().Err(err).
			Str("action_id", id).
			Msg("failed to journal dequeue")
	}
}
