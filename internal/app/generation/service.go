// Package generation manages the dashboard's generation history records.
// The records are metadata only; the external workflow that produces the
// assets is an opaque collaborator.
package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trymyra/walletd/internal/domain"
)

// Service manages generation records over a GenerationStore.
type Service struct {
	store  domain.GenerationStore
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a generation record service.
func NewService(store domain.GenerationStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Add records a produced generation. ID and CreatedAt are assigned here
// when the caller leaves them empty.
func (s *Service) Add(ctx context.Context, g domain.Generation) (domain.Generation, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now().UTC()
	}
	if g.Status == "" {
		g.Status = domain.GenerationReady
	}
	if err := s.store.InsertGeneration(ctx, g); err != nil {
		s.logger.Error("record generation failed", "user_id", g.UserID, "error", err)
		return domain.Generation{}, err
	}
	s.logger.Info("generation recorded", "user_id", g.UserID, "id", g.ID, "type", g.Type)
	return g, nil
}

// List returns the user's generation records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Generation, error) {
	return s.store.GenerationsByUser(ctx, userID)
}

// Delete removes one generation record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteGeneration(ctx, id)
}

// ClearHistory removes all of a user's generation records. Ledger entries
// are untouched: usage history stays reconstructable after a reset.
func (s *Service) ClearHistory(ctx context.Context, userID string) error {
	if err := s.store.ClearGenerations(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("generation history cleared", "user_id", userID)
	return nil
}
