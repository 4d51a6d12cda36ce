package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// Ledger abstracts durable, append-only storage of ledger entries,
// partitioned by user ID. No update-in-place operation is exposed: the
// ledger stays auditable, and the balance fold is always reconstructable.
type Ledger interface {
	// Append persists a new entry. The entry becomes visible to reads
	// once the write is acknowledged.
	Append(ctx context.Context, entry LedgerEntry) error

	// ConditionalDebit appends a debit entry only if the user's folded
	// balance covers entry.Amount, as one atomic operation. Returns
	// ErrInsufficientBalance when the guard fails; the store is left
	// untouched in that case.
	ConditionalDebit(ctx context.Context, entry LedgerEntry) error

	// ListByUser returns all entries for the user, newest first.
	// An unknown user yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID string) ([]LedgerEntry, error)

	// ListByUserKind returns the user's entries of one kind, newest first.
	ListByUserKind(ctx context.Context, userID string, kind EntryKind) ([]LedgerEntry, error)

	// Balance computes the fold over the user's Completed entries.
	Balance(ctx context.Context, userID string) (int64, error)

	// ClearByUser removes all entries for a user. Irreversible.
	ClearByUser(ctx context.Context, userID string) error
}

// GenerationStore abstracts storage of generation records.
type GenerationStore interface {
	InsertGeneration(ctx context.Context, g Generation) error
	GenerationsByUser(ctx context.Context, userID string) ([]Generation, error)
	DeleteGeneration(ctx context.Context, id string) error
	ClearGenerations(ctx context.Context, userID string) error
}
