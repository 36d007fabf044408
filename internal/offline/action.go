package offline

import (
	"encoding/json"
	"time"
)

// Action states. An action moves Created -> Attempting -> Applied, or
// ends in one of the failed states.
const (
	StateCreated         = "created"
	StateAttempting      = "attempting"
	StateApplied         = "applied"
	StateFailedRetryable = "failed_retryable"
	StateFailedTerminal  = "failed_terminal"
)

// Action is one queued mutation awaiting replay against the server.
// The ID doubles as the idempotency key sent with every attempt, so an
// ambiguous timeout followed by a retry cannot apply twice.
type Action struct {
	ID         string          `json:"id"`
	Method     string          `json:"method"`
	Target     string          `json:"target"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	State      string          `json:"state"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"lastError,omitempty"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// Pending reports whether the action still needs to reach the server.
func (a *Action) Pending() bool {
	switch a.State {
	case StateCreated, StateAttempting, StateFailedRetryable:
		return true
	}
	return false
}
