package offline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sender delivers a single action to the server.
type Sender interface {
	Send(ctx context.Context, action *Action) error
}

// TerminalError marks a server rejection that retrying cannot fix,
// such as a validation failure. Transport errors and timeouts are
// ordinary errors and stay retryable.
type TerminalError struct {
	StatusCode int
	Body       string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("server rejected action: status %d: %s", e.StatusCode, e.Body)
}

// IsTerminal reports whether err means the action must not be retried.
func IsTerminal(err error) bool {
	var terminal *TerminalError
	return errors.As(err, &terminal)
}

const defaultAttemptTimeout = 10 * time.Second

// HTTPSender replays actions against the ledger API. Every request
// carries the action ID as Idempotency-Key so a retry after an
// ambiguous timeout is de-duplicated server-side.
type HTTPSender struct {
	baseURL        string
	client         *http.Client
	attemptTimeout time.Duration
}

// NewHTTPSender creates a sender targeting baseURL.
func NewHTTPSender(baseURL string, client *http.Client) *HTTPSender {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSender{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         client,
		attemptTimeout: defaultAttemptTimeout,
	}
}

// Send performs one bounded-timeout attempt.
func (s *HTTPSender) Send(ctx context.Context, action *Action) error {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	var body io.Reader
	if len(action.Payload) > 0 {
		body = bytes.NewReader(action.Payload)
	}

	req, err := http.NewRequestWithContext(ctx, action.Method, s.baseURL+action.Target, body)
	if err != nil {
		return &TerminalError{Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", action.ID)

	resp, err := s.client.Do(req)
	if err != nil {
		// Connectivity or timeout: the action stays queued.
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		// Overload and server-side failures are transient; only
		// client errors mean the action itself is bad.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("server unavailable: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		}

		return &TerminalError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	return nil
}
