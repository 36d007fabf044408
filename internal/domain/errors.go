package domain

import "errors"

var (
	// Validation errors are rejected synchronously and never retried.
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrEmptySplits        = errors.New("expense requires at least one split")
	ErrSplitSumMismatch   = errors.New("split amounts do not sum to expense amount")
	ErrInvalidSplitAmount = errors.New("split amount must not be negative")
	ErrSameUser           = errors.New("payer and receiver must differ")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAlreadyMember      = errors.New("user is already a trip member")

	// Not-found errors
	ErrUserNotFound     = errors.New("user not found")
	ErrTripNotFound     = errors.New("trip not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrVoteNotFound     = errors.New("vote not found")
	ErrDocumentNotFound = errors.New("document not found")
)
