package domain

import (
	"testing"
	"time"
)

// ─── Balance Fold Tests ─────────────────────────────────────────────────────

func entry(kind EntryKind, amount int64, status EntryStatus) LedgerEntry {
	return LedgerEntry{
		ID:        "e",
		UserID:    "u",
		Kind:      kind,
		Amount:    amount,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestFoldBalance(t *testing.T) {
	tests := []struct {
		name    string
		entries []LedgerEntry
		want    int64
	}{
		{
			name:    "empty ledger folds to zero",
			entries: nil,
			want:    0,
		},
		{
			name: "credits add, debits subtract",
			entries: []LedgerEntry{
				entry(KindCredit, 5000, StatusCompleted),
				entry(KindDebit, 25, StatusCompleted),
				entry(KindDebit, 120, StatusCompleted),
			},
			want: 4855,
		},
		{
			name: "pending entries never count",
			entries: []LedgerEntry{
				entry(KindCredit, 1000, StatusCompleted),
				entry(KindCredit, 500, StatusPending),
				entry(KindDebit, 50, StatusPending),
			},
			want: 1000,
		},
		{
			name: "failed entries never count",
			entries: []LedgerEntry{
				entry(KindCredit, 1000, StatusCompleted),
				entry(KindDebit, 200, StatusFailed),
			},
			want: 1000,
		},
		{
			name: "only non-completed entries",
			entries: []LedgerEntry{
				entry(KindCredit, 900, StatusPending),
				entry(KindDebit, 10, StatusFailed),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldBalance(tt.entries); got != tt.want {
				t.Errorf("FoldBalance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLedgerEntry_Signed(t *testing.T) {
	if got := entry(KindCredit, 100, StatusCompleted).Signed(); got != 100 {
		t.Errorf("credit Signed() = %d, want 100", got)
	}
	if got := entry(KindDebit, 100, StatusCompleted).Signed(); got != -100 {
		t.Errorf("debit Signed() = %d, want -100", got)
	}
	if got := entry(KindDebit, 100, StatusPending).Signed(); got != 0 {
		t.Errorf("pending Signed() = %d, want 0", got)
	}
}

// ─── Variant Validation Tests ───────────────────────────────────────────────

func TestEntryKind_Valid(t *testing.T) {
	if !KindCredit.Valid() || !KindDebit.Valid() {
		t.Error("known kinds should be valid")
	}
	if EntryKind("REFUND").Valid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestEntryStatus_Valid(t *testing.T) {
	for _, s := range []EntryStatus{StatusCompleted, StatusPending, StatusFailed} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if EntryStatus("Settled").Valid() {
		t.Error("unknown status should be invalid")
	}
}

// ─── Price List Tests ───────────────────────────────────────────────────────

func TestPriceList_Cost(t *testing.T) {
	prices := PriceList{
		ActionImage:   5,
		ActionUGC:     20,
		ActionVFX:     25,
		ActionNoHuman: 15,
	}

	tests := []struct {
		action ActionKind
		want   int64
		ok     bool
	}{
		{ActionImage, 5, true},
		{ActionUGC, 20, true},
		{ActionVFX, 25, true},
		{ActionNoHuman, 15, true},
		{ActionKind("RENDER"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, ok := prices.Cost(tt.action)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Cost(%q) = (%d, %v), want (%d, %v)", tt.action, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPriceList_Cost_NonPositivePrice(t *testing.T) {
	prices := PriceList{ActionImage: 0}
	if _, ok := prices.Cost(ActionImage); ok {
		t.Error("zero-priced action should not resolve")
	}
}
