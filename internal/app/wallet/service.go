// Package wallet implements the wallet service: the only component that
// computes balances and the only one entitled to approve a debit.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trymyra/walletd/internal/domain"
	"github.com/trymyra/walletd/internal/infra/observability"
)

// Service exposes the user-facing wallet operations over a ledger store.
// Balance is always the fold over Completed entries, never a cached
// counter, so the ledger and the reported balance cannot diverge.
type Service struct {
	ledger domain.Ledger
	prices domain.PriceList
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a wallet service. prices is the externally configured
// action-kind price list.
func NewService(ledger domain.Ledger, prices domain.PriceList, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger: ledger,
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
}

// Balance returns the user's current balance. Side-effect-free; an unknown
// user folds to 0.
func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	return s.ledger.Balance(ctx, userID)
}

// TryDebit is the single gating point for spending credits. It appends a
// Completed debit entry if and only if the user's balance covers amount,
// atomically, and returns the appended entry. A rejection leaves the
// ledger untouched. Callers must observe success here before invoking the
// credit-consuming action; a later failure of that action does not refund
// the debit (spent credits are forfeited).
func (s *Service) TryDebit(ctx context.Context, userID string, amount int64, description, category string) (domain.LedgerEntry, error) {
	if amount <= 0 {
		return domain.LedgerEntry{}, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	entry := domain.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        domain.KindDebit,
		Amount:      amount,
		Description: description,
		Category:    category,
		Status:      domain.StatusCompleted,
		CreatedAt:   s.now().UTC(),
	}

	err := s.ledger.ConditionalDebit(ctx, entry)
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		observability.DebitsTotal.WithLabelValues(observability.OutcomeRejected).Inc()
		s.logger.Info("debit rejected",
			"user_id", userID,
			"amount", amount,
			"category", category,
		)
		return domain.LedgerEntry{}, err
	case err != nil:
		observability.DebitsTotal.WithLabelValues(observability.OutcomeError).Inc()
		s.logger.Error("debit failed",
			"user_id", userID,
			"amount", amount,
			"error", err,
		)
		return domain.LedgerEntry{}, err
	}

	observability.DebitsTotal.WithLabelValues(observability.OutcomeApproved).Inc()
	observability.DebitedCredits.Add(float64(amount))
	s.logger.Info("debit approved",
		"user_id", userID,
		"entry_id", entry.ID,
		"amount", amount,
		"category", category,
	)
	return entry, nil
}

// Price returns the configured credit cost of a generation action.
// A missing or non-positive price list entry is a config error, not a
// user error.
func (s *Service) Price(action domain.ActionKind) (int64, error) {
	cost, ok := s.prices.Cost(action)
	if !ok {
		s.logger.Error("price list has no entry for action", "action", string(action))
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}
	return cost, nil
}

// DebitForAction resolves the credit cost of a generation action from the
// price list, then debits it.
func (s *Service) DebitForAction(ctx context.Context, userID string, action domain.ActionKind, description string) (domain.LedgerEntry, error) {
	cost, err := s.Price(action)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return s.TryDebit(ctx, userID, cost, description, string(action))
}

// AddCredit appends a credit entry, normally after a confirmed external
// payment. A Pending entry is recorded but never counts toward balance;
// the ledger is append-only, so a later confirmation is a separate
// Completed entry rather than a status transition.
func (s *Service) AddCredit(ctx context.Context, userID string, amount int64, description string, amountINR int64, paymentMethod string, status domain.EntryStatus) (domain.LedgerEntry, error) {
	if amount <= 0 {
		return domain.LedgerEntry{}, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	if status == "" {
		status = domain.StatusCompleted
	}
	if !status.Valid() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidEntry, status)
	}

	entry := domain.LedgerEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		Kind:          domain.KindCredit,
		Amount:        amount,
		Description:   description,
		Category:      "Top-up",
		Status:        status,
		AmountINR:     amountINR,
		PaymentMethod: paymentMethod,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		// A failed append is a failed operation end-to-end: no caller-visible
		// state may change until the store acknowledged the write.
		s.logger.Error("credit append failed",
			"user_id", userID,
			"amount", amount,
			"error", err,
		)
		return domain.LedgerEntry{}, err
	}

	observability.CreditsTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info("credit appended",
		"user_id", userID,
		"entry_id", entry.ID,
		"amount", amount,
		"status", string(status),
	)
	return entry, nil
}

// History returns all of the user's ledger entries, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// Credits returns the user's payment history (credit entries only).
func (s *Service) Credits(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	return s.ledger.ListByUserKind(ctx, userID, domain.KindCredit)
}

// Debits returns the user's usage history (debit entries only).
func (s *Service) Debits(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	return s.ledger.ListByUserKind(ctx, userID, domain.KindDebit)
}

// Clear wipes the user's entire ledger. Administrative and irreversible.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.ledger.ClearByUser(ctx, userID); err != nil {
		return err
	}
	observability.LedgerClearsTotal.Inc()
	s.logger.Warn("ledger cleared", "user_id", userID)
	return nil
}
