// Package observability holds the Prometheus metrics for walletd.
// Metrics are registered once at import time via promauto and exposed on
// /metrics when enabled in the daemon config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Wallet Metrics ─────────────────────────────────────────────────────────

var (
	// DebitsTotal counts debit attempts by outcome: approved, rejected
	// (insufficient balance), or error (store failure).
	DebitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_debits_total",
			Help: "Debit attempts by outcome",
		},
		[]string{"outcome"},
	)

	// CreditsTotal counts appended credit entries by status.
	CreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_credits_total",
			Help: "Appended credit entries by status",
		},
		[]string{"status"},
	)

	// LedgerClearsTotal counts administrative ledger resets.
	LedgerClearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "walletd_ledger_clears_total",
			Help: "Administrative clear-by-user operations",
		},
	)

	// DebitedCredits sums the credits consumed by approved debits.
	DebitedCredits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "walletd_debited_credits_total",
			Help: "Total credits consumed by approved debits",
		},
	)
)

// ─── HTTP Metrics ───────────────────────────────────────────────────────────

var (
	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_http_requests_total",
			Help: "Handled HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "walletd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Outcome labels for DebitsTotal.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
