// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── Ledger Types ───────────────────────────────────────────────────────────
// The credit ledger is append-only: a user's balance is never stored as a
// mutable counter, it is always the fold over their Completed entries.

// EntryKind represents the accounting side of a ledger entry.
type EntryKind string

const (
	KindCredit EntryKind = "CREDIT"
	KindDebit  EntryKind = "DEBIT"
)

// Valid reports whether the kind is one of the known variants.
func (k EntryKind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// EntryStatus is the settlement state of a ledger entry.
// Only Completed entries count toward balance.
type EntryStatus string

const (
	StatusCompleted EntryStatus = "Completed"
	StatusPending   EntryStatus = "Pending"
	StatusFailed    EntryStatus = "Failed"
)

// Valid reports whether the status is one of the known variants.
func (s EntryStatus) Valid() bool {
	return s == StatusCompleted || s == StatusPending || s == StatusFailed
}

// LedgerEntry is one immutable record of a balance-affecting event.
// Amount is always a non-negative magnitude; the direction of its effect
// on balance is determined solely by Kind.
type LedgerEntry struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Kind          EntryKind   `json:"kind"`
	Amount        int64       `json:"amount"`
	Description   string      `json:"description"`
	Category      string      `json:"category,omitempty"`
	Status        EntryStatus `json:"status"`
	AmountINR     int64       `json:"amountINR,omitempty"`     // credit entries only
	PaymentMethod string      `json:"paymentMethod,omitempty"` // credit entries only
	CreatedAt     time.Time   `json:"createdAt"`
}

// Counts reports whether the entry participates in the balance fold.
func (e LedgerEntry) Counts() bool {
	return e.Status == StatusCompleted
}

// Signed returns the entry's signed effect on balance: positive for
// credits, negative for debits. Non-counting entries return 0.
func (e LedgerEntry) Signed() int64 {
	if !e.Counts() {
		return 0
	}
	if e.Kind == KindDebit {
		return -e.Amount
	}
	return e.Amount
}

// FoldBalance computes the balance over a sequence of entries.
// Pending and Failed entries never affect the result.
func FoldBalance(entries []LedgerEntry) int64 {
	var balance int64
	for _, e := range entries {
		balance += e.Signed()
	}
	return balance
}

// ─── Action Kinds ───────────────────────────────────────────────────────────

// ActionKind names a paid generation action. The credit cost of each kind
// comes from external configuration (the price list), not from here.
type ActionKind string

const (
	ActionImage   ActionKind = "IMAGE"
	ActionUGC     ActionKind = "UGC"
	ActionVFX     ActionKind = "VFX"
	ActionNoHuman ActionKind = "NO HUMAN"
)

// PriceList maps an action kind to its credit cost.
type PriceList map[ActionKind]int64

// Cost returns the cost for the action kind, or ok=false when the kind has
// no configured price.
func (p PriceList) Cost(kind ActionKind) (int64, bool) {
	cost, ok := p[kind]
	if !ok || cost <= 0 {
		return 0, false
	}
	return cost, true
}
