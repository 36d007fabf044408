package offline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// scriptedSender records the order actions arrive in and fails
// according to a per-call script.
type scriptedSender struct {
	mu    sync.Mutex
	sent  []string
	calls int
	fail  func(call int, action *Action) error
}

func (s *scriptedSender) Send(ctx context.Context, action *Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		if err := s.fail(s.calls, action); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, action.ID)
	return nil
}

func newTestQueue(t *testing.T, sender Sender) *Queue {
	t.Helper()
	return restoreTestQueue(t, sender, filepath.Join(t.TempDir(), "queue.json"))
}

func restoreTestQueue(t *testing.T, sender Sender, path string) *Queue {
	t.Helper()
	n := 0
	q, err := NewQueue(Config{
		Journal: NewJournal(path),
		Sender:  sender,
		IDGen: func() string {
			n++
			return fmt.Sprintf("act-%04d", n)
		},
		Logger:          zerolog.Nop(),
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	return q
}

func enqueue(t *testing.T, q *Queue, target string) *Action {
	t.Helper()
	action, err := q.Enqueue("POST", target, map[string]string{"target": target})
	if err != nil {
		t.Fatalf("enqueue %s: %v", target, err)
	}
	return action
}

func TestQueue_DrainPreservesOrderAcrossFlaps(t *testing.T) {
	sender := &scriptedSender{}
	// The first two calls hit a dead network.
	sender.fail = func(call int, _ *Action) error {
		if call <= 2 {
			return errors.New("connection refused")
		}
		return nil
	}

	q := newTestQueue(t, sender)
	x := enqueue(t, q, "/api/v1/trips/t1/expenses")
	y := enqueue(t, q, "/api/v1/votes/v1/responses")
	z := enqueue(t, q, "/api/v1/trips/t1/settlements")

	// First drain: the head exhausts its retries and blocks the queue.
	result, err := q.Drain(context.Background())
	if err != nil {
		t.Fatalf("first drain: %v", err)
	}
	if !result.Stalled || result.Applied != 0 {
		t.Fatalf("first drain = %+v, want stalled with nothing applied", result)
	}
	if pending := q.Pending(); len(pending) != 3 || pending[0].ID != x.ID {
		t.Fatalf("queue reordered after stall: %v", pending)
	}
	if q.Pending()[0].State != StateFailedRetryable {
		t.Errorf("head state = %s, want %s", q.Pending()[0].State, StateFailedRetryable)
	}

	// Connectivity restored: everything applies in enqueue order.
	result, err = q.Drain(context.Background())
	if err != nil {
		t.Fatalf("second drain: %v", err)
	}
	if result.Applied != 3 || result.Stalled {
		t.Fatalf("second drain = %+v, want 3 applied", result)
	}

	want := []string{x.ID, y.ID, z.ID}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent %v, want %v", sender.sent, want)
	}
	for i, id := range want {
		if sender.sent[i] != id {
			t.Errorf("sent[%d] = %s, want %s", i, sender.sent[i], id)
		}
	}
	if len(q.Pending()) != 0 {
		t.Errorf("expected empty queue, got %v", q.Pending())
	}
}

func TestQueue_TerminalFailureDoesNotBlockQueue(t *testing.T) {
	sender := &scriptedSender{}
	sender.fail = func(_ int, action *Action) error {
		if action.Target == "/bad" {
			return &TerminalError{StatusCode: 422, Body: "split sum mismatch"}
		}
		return nil
	}

	q := newTestQueue(t, sender)
	enqueue(t, q, "/bad")
	good := enqueue(t, q, "/good")

	result, err := q.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if result.Terminal != 1 || result.Applied != 1 {
		t.Fatalf("drain = %+v, want 1 terminal and 1 applied", result)
	}
	if len(sender.sent) != 1 || sender.sent[0] != good.ID {
		t.Errorf("sent = %v, want only %s", sender.sent, good.ID)
	}
	if len(q.Pending()) != 0 {
		t.Errorf("terminal action left in queue: %v", q.Pending())
	}
}

func TestQueue_TerminalNotRetried(t *testing.T) {
	sender := &scriptedSender{}
	sender.fail = func(_ int, _ *Action) error {
		return &TerminalError{StatusCode: 400, Body: "bad request"}
	}

	q := newTestQueue(t, sender)
	enqueue(t, q, "/bad")

	if _, err := q.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if sender.calls != 1 {
		t.Errorf("terminal action attempted %d times, want 1", sender.calls)
	}
}

func TestQueue_Cancel(t *testing.T) {
	sender := &scriptedSender{}
	q := newTestQueue(t, sender)

	a := enqueue(t, q, "/one")
	b := enqueue(t, q, "/two")

	if err := q.Cancel(b.ID); err != nil {
		t.Fatalf("cancel created action: %v", err)
	}
	if err := q.Cancel("missing"); !errors.Is(err, ErrActionNotFound) {
		t.Errorf("expected ErrActionNotFound, got %v", err)
	}

	if _, err := q.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := q.Cancel(a.ID); !errors.Is(err, ErrActionNotFound) {
		t.Errorf("expected applied action to be gone, got %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != a.ID {
		t.Errorf("sent = %v, want only %s", sender.sent, a.ID)
	}
}

func TestQueue_RestoreFromJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	dead := &scriptedSender{}
	dead.fail = func(int, *Action) error { return errors.New("offline") }

	q := restoreTestQueue(t, dead, path)
	x := enqueue(t, q, "/one")
	y := enqueue(t, q, "/two")
	if _, err := q.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}

	// A fresh process over the same journal sees the same queue and
	// replays under the original action IDs.
	sender := &scriptedSender{}
	restored := restoreTestQueue(t, sender, path)

	pending := restored.Pending()
	if len(pending) != 2 || pending[0].ID != x.ID || pending[1].ID != y.ID {
		t.Fatalf("restored queue = %v, want [%s %s]", pending, x.ID, y.ID)
	}

	result, err := restored.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain restored: %v", err)
	}
	if result.Applied != 2 {
		t.Fatalf("drain restored = %+v, want 2 applied", result)
	}
	if sender.sent[0] != x.ID || sender.sent[1] != y.ID {
		t.Errorf("replayed order %v", sender.sent)
	}
}

func TestQueue_InterruptedAttemptRestoredAsRetryable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	journal := NewJournal(path)
	if err := journal.Save([]*Action{
		{ID: "act-1", Method: "POST", Target: "/one", State: StateAttempting},
		{ID: "act-2", Method: "POST", Target: "/two", State: StateApplied},
		{ID: "act-3", Method: "POST", Target: "/three", State: StateCreated},
	}); err != nil {
		t.Fatalf("seed journal: %v", err)
	}

	q := restoreTestQueue(t, &scriptedSender{}, path)

	pending := q.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending actions, got %v", pending)
	}
	if pending[0].ID != "act-1" || pending[0].State != StateFailedRetryable {
		t.Errorf("interrupted action = %+v, want retryable at head", pending[0])
	}
	if pending[1].ID != "act-3" {
		t.Errorf("expected act-3 second, got %s", pending[1].ID)
	}
}
