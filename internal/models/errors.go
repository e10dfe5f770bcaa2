package models

import "errors"

// Domain errors. The UI recovers from all of these by re-prompting; only
// storage failures (wrapped separately) abort the current operation.
var (
	ErrDuplicateAccount   = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidAmount      = errors.New("amount must be > 0")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotFound    = errors.New("account not found")
)
