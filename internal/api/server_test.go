package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trymyra/walletd/internal/app/generation"
	"github.com/trymyra/walletd/internal/app/wallet"
	"github.com/trymyra/walletd/internal/domain"
	"github.com/trymyra/walletd/internal/infra/sqlite"
)

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	prices := domain.PriceList{
		domain.ActionImage:   5,
		domain.ActionUGC:     20,
		domain.ActionVFX:     25,
		domain.ActionNoHuman: 15,
	}
	srv := NewServer(
		wallet.NewService(db, prices, nil),
		generation.NewService(db, nil),
	)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// ─── Health ─────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	h := setupHandler(t)
	w := doJSON(t, h, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

// ─── Wallet API ─────────────────────────────────────────────────────────────

func TestWalletAPI_BalanceUnknownUser(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/wallet/nonexistent/balance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	decode(t, w, &resp)
	if resp["balance"] != float64(0) {
		t.Errorf("balance = %v, want 0", resp["balance"])
	}
}

func TestWalletAPI_CreditThenDebit(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/wallet/u1/credit", map[string]interface{}{
		"amount":      5000,
		"description": "Wallet Top-up",
		"amountINR":   1800,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("credit: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var credResp struct {
		Balance int64 `json:"balance"`
	}
	decode(t, w, &credResp)
	if credResp.Balance != 5000 {
		t.Errorf("balance = %d, want 5000", credResp.Balance)
	}

	w = doJSON(t, h, http.MethodPost, "/api/wallet/u1/debit", map[string]interface{}{
		"amount":      25,
		"description": "VFX ad",
		"category":    "VFX",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("debit: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var debResp struct {
		Balance int64              `json:"balance"`
		Entry   domain.LedgerEntry `json:"entry"`
	}
	decode(t, w, &debResp)
	if debResp.Balance != 4975 {
		t.Errorf("balance = %d, want 4975", debResp.Balance)
	}
	if debResp.Entry.Kind != domain.KindDebit {
		t.Errorf("entry kind = %q, want DEBIT", debResp.Entry.Kind)
	}
}

func TestWalletAPI_DebitInsufficient(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/wallet/u1/credit", map[string]interface{}{
		"amount":      10,
		"description": "Top-up",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("credit: got %d", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/api/wallet/u1/debit", map[string]interface{}{
		"amount":      110,
		"description": "VFX ad",
	})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	decode(t, w, &resp)
	if want := "you need 100 more credits"; resp.Error.Message != want {
		t.Errorf("message = %q, want %q", resp.Error.Message, want)
	}
}

func TestWalletAPI_DebitByAction(t *testing.T) {
	h := setupHandler(t)

	doJSON(t, h, http.MethodPost, "/api/wallet/u1/credit", map[string]interface{}{
		"amount": 100, "description": "Top-up",
	})

	w := doJSON(t, h, http.MethodPost, "/api/wallet/u1/debit", map[string]interface{}{
		"action":      "UGC",
		"description": "UGC ad",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Entry domain.LedgerEntry `json:"entry"`
	}
	decode(t, w, &resp)
	if resp.Entry.Amount != 20 {
		t.Errorf("amount = %d, want 20 (UGC price)", resp.Entry.Amount)
	}

	w = doJSON(t, h, http.MethodPost, "/api/wallet/u1/debit", map[string]interface{}{
		"action":      "RENDER",
		"description": "unknown",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unpriced action: expected 400, got %d", w.Code)
	}
}

func TestWalletAPI_InvalidDebitAmount(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/wallet/u1/debit", map[string]interface{}{
		"amount":      0,
		"description": "bad",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWalletAPI_ClearLedger(t *testing.T) {
	h := setupHandler(t)

	doJSON(t, h, http.MethodPost, "/api/wallet/u1/credit", map[string]interface{}{
		"amount": 500, "description": "Top-up",
	})

	w := doJSON(t, h, http.MethodDelete, "/api/wallet/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/api/wallet/u1/balance", nil)
	var resp map[string]interface{}
	decode(t, w, &resp)
	if resp["balance"] != float64(0) {
		t.Errorf("balance after clear = %v, want 0", resp["balance"])
	}

	w = doJSON(t, h, http.MethodGet, "/api/wallet/u1/history", nil)
	var history []domain.LedgerEntry
	decode(t, w, &history)
	if len(history) != 0 {
		t.Errorf("history after clear = %d entries, want 0", len(history))
	}
}

// ─── Collection-Compatible API ──────────────────────────────────────────────

func TestCompatAPI_TransactionsRoundTrip(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/transactions", map[string]interface{}{
		"userId":        "u1",
		"description":   "Razorpay Online Payment",
		"amount":        2000,
		"amountINR":     2000,
		"status":        "Completed",
		"paymentMethod": "Razorpay",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var doc map[string]interface{}
	decode(t, w, &doc)
	if doc["id"] == "" || doc["date"] == "" {
		t.Error("id and date should be server-generated")
	}
	if doc["amount"] != float64(2000) {
		t.Errorf("amount = %v, want 2000", doc["amount"])
	}

	w = doJSON(t, h, http.MethodGet, "/api/transactions/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var docs []map[string]interface{}
	decode(t, w, &docs)
	if len(docs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(docs))
	}
	if docs[0]["paymentMethod"] != "Razorpay" {
		t.Errorf("paymentMethod = %v, want Razorpay", docs[0]["paymentMethod"])
	}
}

func TestCompatAPI_UsagesAreGatedAndSigned(t *testing.T) {
	h := setupHandler(t)

	// No balance yet: the usage append must be rejected, unlike the
	// original backend which persisted whatever arrived.
	w := doJSON(t, h, http.MethodPost, "/api/usages", map[string]interface{}{
		"userId":      "u1",
		"description": "AI Generation",
		"amount":      -25,
		"category":    "VFX",
	})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}

	doJSON(t, h, http.MethodPost, "/api/transactions", map[string]interface{}{
		"userId": "u1", "description": "Top-up", "amount": 100, "status": "Completed",
	})

	w = doJSON(t, h, http.MethodPost, "/api/usages", map[string]interface{}{
		"userId":      "u1",
		"description": "AI Generation",
		"amount":      -25,
		"category":    "VFX",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var doc map[string]interface{}
	decode(t, w, &doc)
	if doc["amount"] != float64(-25) {
		t.Errorf("usage amount on the wire = %v, want -25", doc["amount"])
	}

	w = doJSON(t, h, http.MethodGet, "/api/usages/u1", nil)
	var docs []map[string]interface{}
	decode(t, w, &docs)
	if len(docs) != 1 || docs[0]["category"] != "VFX" {
		t.Errorf("usages = %v, want one VFX entry", docs)
	}
}

// ─── Generations API ────────────────────────────────────────────────────────

func TestGenerationsAPI_CRUD(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/generations", map[string]interface{}{
		"userId": "u1",
		"title":  "Sneaker campaign",
		"type":   "Image",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created domain.Generation
	decode(t, w, &created)
	if created.ID == "" {
		t.Fatal("ID should be server-generated")
	}

	w = doJSON(t, h, http.MethodGet, "/api/generations/u1", nil)
	var gens []domain.Generation
	decode(t, w, &gens)
	if len(gens) != 1 {
		t.Fatalf("got %d generations, want 1", len(gens))
	}

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/generations/%s", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/generations/%s", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}

	doJSON(t, h, http.MethodPost, "/api/generations", map[string]interface{}{
		"userId": "u1", "title": "Another", "type": "VFX",
	})
	w = doJSON(t, h, http.MethodDelete, "/api/generations/user/u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	w = doJSON(t, h, http.MethodGet, "/api/generations/u1", nil)
	decode(t, w, &gens)
	if len(gens) != 0 {
		t.Errorf("after clear: %d generations, want 0", len(gens))
	}
}

func TestGenerationsAPI_RequiresUserID(t *testing.T) {
	h := setupHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/generations", map[string]interface{}{
		"title": "No owner",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
