package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// RateCacheTTL is how long fetched exchange rates stay valid.
	RateCacheTTL = time.Hour
)
