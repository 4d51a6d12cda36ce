package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trymyra/walletd/internal/domain"
)

// ─── Collection-Compatible API ──────────────────────────────────────────────
// The original backend stored credit and debit events in two collections
// (Transactions and Usages) with their own wire shapes, notably signed
// amounts on usages. These handlers project the unified ledger back into
// that shape so existing dashboard clients keep working.

// dateLayout matches the original client's display date format.
const dateLayout = "Jan 2, 2006"

type transactionDoc struct {
	UserID        string `json:"userId"`
	ID            string `json:"id"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	AmountINR     int64  `json:"amountINR,omitempty"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type usageDoc struct {
	UserID      string `json:"userId"`
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"` // negative: debits are stored signed on the wire
	Status      string `json:"status"`
	Category    string `json:"category"`
	CreatedAt   string `json:"createdAt"`
}

func toTransactionDoc(e domain.LedgerEntry) transactionDoc {
	return transactionDoc{
		UserID:        e.UserID,
		ID:            e.ID,
		Date:          e.CreatedAt.Format(dateLayout),
		Description:   e.Description,
		Amount:        e.Amount,
		AmountINR:     e.AmountINR,
		Status:        string(e.Status),
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func toUsageDoc(e domain.LedgerEntry) usageDoc {
	return usageDoc{
		UserID:      e.UserID,
		ID:          e.ID,
		Date:        e.CreatedAt.Format(dateLayout),
		Description: e.Description,
		Amount:      -e.Amount,
		Status:      string(e.Status),
		Category:    e.Category,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// handleListTransactions returns the user's credit entries.
// GET /api/transactions/{userID}
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := s.wallet.Credits(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	docs := make([]transactionDoc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, toTransactionDoc(e))
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleCreateTransaction appends a credit entry. The body is the document
// minus id and date, which are server-generated.
// POST /api/transactions
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string `json:"userId"`
		Description   string `json:"description"`
		Amount        int64  `json:"amount"`
		AmountINR     int64  `json:"amountINR,omitempty"`
		Status        string `json:"status,omitempty"`
		PaymentMethod string `json:"paymentMethod,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	entry, err := s.wallet.AddCredit(r.Context(), req.UserID, req.Amount, req.Description,
		req.AmountINR, req.PaymentMethod, domain.EntryStatus(req.Status))
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidEntry):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionDoc(entry))
}

// handleListUsages returns the user's debit entries.
// GET /api/usages/{userID}
func (s *Server) handleListUsages(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := s.wallet.Debits(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	docs := make([]usageDoc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, toUsageDoc(e))
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleCreateUsage records a debit. Unlike the original backend, which
// appended whatever the client sent, the write is gated on the folded
// balance: an uncovered debit is rejected without any store mutation.
// POST /api/usages
func (s *Server) handleCreateUsage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		Description string `json:"description"`
		Amount      int64  `json:"amount"` // clients send debits negative; accept either sign
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	amount := req.Amount
	if amount < 0 {
		amount = -amount
	}

	entry, err := s.wallet.TryDebit(r.Context(), req.UserID, amount, req.Description, req.Category)
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeError(w, http.StatusPaymentRequired, "insufficient balance")
		return
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toUsageDoc(entry))
}
