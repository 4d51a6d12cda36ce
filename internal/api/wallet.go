package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trymyra/walletd/internal/domain"
)

// ─── Wallet API ─────────────────────────────────────────────────────────────
//
// GET    /api/wallet/{userID}/balance — current balance (derived fold)
// GET    /api/wallet/{userID}/history — full ledger history, newest first
// POST   /api/wallet/{userID}/debit   — gated debit (402 on insufficient)
// POST   /api/wallet/{userID}/credit  — append credit after payment
// DELETE /api/wallet/{userID}         — administrative ledger reset

// handleBalance returns the user's folded balance.
// GET /api/wallet/{userID}/balance
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	balance, err := s.wallet.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":  userID,
		"balance": balance,
	})
}

// handleHistory returns the user's full ledger history.
// GET /api/wallet/{userID}/history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := s.wallet.History(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type debitRequest struct {
	Amount      int64  `json:"amount,omitempty"`
	Action      string `json:"action,omitempty"` // price-list lookup when set
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// handleDebit gates and records a debit. When the request names an action
// kind, the amount comes from the configured price list; otherwise the
// explicit amount is used.
// POST /api/wallet/{userID}/debit
func (s *Server) handleDebit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req debitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amount := req.Amount
	category := req.Category
	if req.Action != "" {
		cost, err := s.wallet.Price(domain.ActionKind(req.Action))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		amount = cost
		if category == "" {
			category = req.Action
		}
	}

	entry, err := s.wallet.TryDebit(r.Context(), userID, amount, req.Description, category)
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		balance, berr := s.wallet.Balance(r.Context(), userID)
		msg := "insufficient balance"
		if berr == nil {
			msg = fmt.Sprintf("you need %d more credits", amount-balance)
		}
		writeError(w, http.StatusPaymentRequired, msg)
		return
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	balance, err := s.wallet.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"entry":   entry,
		"balance": balance,
	})
}

type creditRequest struct {
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	AmountINR     int64  `json:"amountINR,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Status        string `json:"status,omitempty"`
}

// handleCredit appends a credit entry, invoked from the payment success
// callback.
// POST /api/wallet/{userID}/credit
func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req creditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := s.wallet.AddCredit(r.Context(), userID, req.Amount, req.Description,
		req.AmountINR, req.PaymentMethod, domain.EntryStatus(req.Status))
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidEntry):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	balance, err := s.wallet.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"entry":   entry,
		"balance": balance,
	})
}

// handleClearLedger wipes the user's ledger.
// DELETE /api/wallet/{userID}
func (s *Server) handleClearLedger(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.wallet.Clear(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
