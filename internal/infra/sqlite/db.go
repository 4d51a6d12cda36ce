// Package sqlite implements the persistent ledger and generation stores
// on an embedded SQLite database (modernc.org/sqlite, pure Go driver).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and owns schema migration.
type DB struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database under dir, then applies
// all migrations. The returned DB is safe for concurrent use.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, "walletd.db")

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows one writer at a time; funnel all connections through a
	// single handle so concurrent conditional debits serialize instead of
	// returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
//
// Credit and debit events live in two physical tables (transactions and
// usages) for compatibility with the original collection layout; the code
// above this layer only ever sees the unified LedgerEntry model.
func Migrations() []string {
	return []string{
		// Credit events (top-ups)
		`CREATE TABLE IF NOT EXISTS transactions (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			description    TEXT NOT NULL,
			amount         INTEGER NOT NULL CHECK (amount >= 0),
			amount_inr     INTEGER NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL,
			created_at     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at)`,

		// Debit events (generation usage)
		`CREATE TABLE IF NOT EXISTS usages (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			description TEXT NOT NULL,
			amount      INTEGER NOT NULL CHECK (amount >= 0),
			category    TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usages_user ON usages(user_id, created_at)`,

		// Generation records (dashboard history)
		`CREATE TABLE IF NOT EXISTS generations (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL,
			type       TEXT NOT NULL,
			status     TEXT NOT NULL,
			asset_url  TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_user ON generations(user_id, created_at)`,
	}
}

func (d *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
