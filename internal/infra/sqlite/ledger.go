package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/trymyra/walletd/internal/domain"
)

// Ledger entry persistence. Credits go to the transactions table, debits to
// the usages table; both surface as domain.LedgerEntry.

// timeLayout keeps lexicographic and chronological order identical, so
// ORDER BY created_at works on the TEXT column. All times are stored UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// creditCategory is implied rather than stored: the transactions table has
// no category column (matching the original collection layout) and every
// credit event is a top-up.
const creditCategory = "Top-up"

func validateEntry(e domain.LedgerEntry) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: missing id", domain.ErrInvalidEntry)
	case e.UserID == "":
		return fmt.Errorf("%w: missing userId", domain.ErrInvalidEntry)
	case e.Amount < 0:
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidEntry, e.Amount)
	case !e.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidEntry, e.Kind)
	case !e.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidEntry, e.Status)
	}
	return nil
}

// Append persists a new ledger entry into the table matching its kind.
func (d *DB) Append(ctx context.Context, e domain.LedgerEntry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	created := e.CreatedAt.UTC().Format(timeLayout)
	var err error
	if e.Kind == domain.KindCredit {
		_, err = d.db.ExecContext(ctx, `
			INSERT INTO transactions (id, user_id, description, amount, amount_inr, payment_method, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.UserID, e.Description, e.Amount, e.AmountINR, e.PaymentMethod, string(e.Status), created)
	} else {
		_, err = d.db.ExecContext(ctx, `
			INSERT INTO usages (id, user_id, description, amount, category, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.UserID, e.Description, e.Amount, e.Category, string(e.Status), created)
	}
	if err != nil {
		return fmt.Errorf("append %s entry: %w", e.Kind, err)
	}
	return nil
}

// ConditionalDebit appends a debit entry only when the user's folded balance
// covers the amount. The guard and the insert run as one SQL statement, so
// concurrent debit attempts for the same user cannot both read a stale
// balance and overdraw.
func (d *DB) ConditionalDebit(ctx context.Context, e domain.LedgerEntry) error {
	if e.Kind != domain.KindDebit {
		return fmt.Errorf("%w: conditional debit requires kind %s", domain.ErrInvalidEntry, domain.KindDebit)
	}
	if err := validateEntry(e); err != nil {
		return err
	}

	res, err := d.db.ExecContext(ctx, `
		INSERT INTO usages (id, user_id, description, amount, category, status, created_at)
		SELECT ?1, ?2, ?3, ?4, ?5, ?6, ?7
		WHERE (
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ?2 AND status = 'Completed')
			-
			(SELECT COALESCE(SUM(amount), 0) FROM usages WHERE user_id = ?2 AND status = 'Completed')
		) >= ?4
	`, e.ID, e.UserID, e.Description, e.Amount, e.Category, string(e.Status), e.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("conditional debit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("conditional debit: %w", err)
	}
	if n == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// Balance folds the user's Completed entries. Unknown users fold to 0.
func (d *DB) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := d.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND status = 'Completed')
			-
			(SELECT COALESCE(SUM(amount), 0) FROM usages WHERE user_id = ? AND status = 'Completed')
	`, userID, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("balance fold: %w", err)
	}
	return balance, nil
}

// ListByUser returns all of the user's entries, newest first.
func (d *DB) ListByUser(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, 'CREDIT', description, amount, ?, status, amount_inr, payment_method, created_at
		FROM transactions WHERE user_id = ?
		UNION ALL
		SELECT id, user_id, 'DEBIT', description, amount, category, status, 0, '', created_at
		FROM usages WHERE user_id = ?
		ORDER BY created_at DESC
	`, creditCategory, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByUserKind returns the user's entries of one kind, newest first.
func (d *DB) ListByUserKind(ctx context.Context, userID string, kind domain.EntryKind) ([]domain.LedgerEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidEntry, kind)
	}

	var (
		query string
		args  []any
	)
	if kind == domain.KindCredit {
		query = `
			SELECT id, user_id, 'CREDIT', description, amount, ?, status, amount_inr, payment_method, created_at
			FROM transactions WHERE user_id = ? ORDER BY created_at DESC`
		args = []any{creditCategory, userID}
	} else {
		query = `
			SELECT id, user_id, 'DEBIT', description, amount, category, status, 0, '', created_at
			FROM usages WHERE user_id = ? ORDER BY created_at DESC`
		args = []any{userID}
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", kind, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ClearByUser removes every ledger entry for the user. Irreversible.
func (d *DB) ClearByUser(ctx context.Context, userID string) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM usages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear usages: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows rowScanner) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var (
			e       domain.LedgerEntry
			kind    string
			status  string
			created string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &kind, &e.Description, &e.Amount,
			&e.Category, &status, &e.AmountINR, &e.PaymentMethod, &created); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = domain.EntryKind(kind)
		e.Status = domain.EntryStatus(status)
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		e.CreatedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
