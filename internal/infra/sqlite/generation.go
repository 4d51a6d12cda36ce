package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/trymyra/walletd/internal/domain"
)

// Generation record persistence. Unlike ledger entries, generation records
// are individually deletable: clearing generation history must not touch
// the ledger.

// InsertGeneration persists a new generation record.
func (d *DB) InsertGeneration(ctx context.Context, g domain.Generation) error {
	if g.ID == "" || g.UserID == "" {
		return fmt.Errorf("%w: missing id or userId", domain.ErrInvalidEntry)
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO generations (id, user_id, title, type, status, asset_url, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.UserID, g.Title, g.Type, string(g.Status), g.AssetURL, g.Content,
		g.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

// GenerationsByUser returns the user's generation records, newest first.
func (d *DB) GenerationsByUser(ctx context.Context, userID string) ([]domain.Generation, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, user_id, title, type, status, asset_url, content, created_at
		FROM generations WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	gens := []domain.Generation{}
	for rows.Next() {
		var (
			g       domain.Generation
			status  string
			created string
		)
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Type, &status, &g.AssetURL, &g.Content, &created); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		g.Status = domain.GenerationStatus(status)
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		g.CreatedAt = t
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

// DeleteGeneration removes a single generation record by ID.
func (d *DB) DeleteGeneration(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM generations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearGenerations removes all generation records for a user.
func (d *DB) ClearGenerations(ctx context.Context, userID string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM generations WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear generations: %w", err)
	}
	return nil
}
