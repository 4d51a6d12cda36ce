package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Wallet errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be a positive integer")
	ErrUnknownAction       = errors.New("no configured price for action kind")

	// Ledger errors
	ErrInvalidEntry = errors.New("ledger entry failed validation")
	ErrNotFound     = errors.New("record not found")
)
