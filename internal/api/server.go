// Package api provides the HTTP server for walletd.
// It exposes the wallet/ledger REST surface consumed by the dashboard UI,
// plus a collection-compatible surface mirroring the original backend.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trymyra/walletd/internal/app/generation"
	"github.com/trymyra/walletd/internal/app/wallet"
	"github.com/trymyra/walletd/internal/infra/observability"
)

// Server is the walletd HTTP API server.
type Server struct {
	wallet         *wallet.Service
	generations    *generation.Service
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(w *wallet.Service, g *generation.Service) *Server {
	return &Server{wallet: w, generations: g}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(metricsMiddleware)

	// Health check for the hosting platform
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Wallet surface (dashboard UI)
	r.Route("/api/wallet/{userID}", func(r chi.Router) {
		r.Get("/balance", s.handleBalance)
		r.Get("/history", s.handleHistory)
		r.Post("/debit", s.handleDebit)
		r.Post("/credit", s.handleCredit)
		r.Delete("/", s.handleClearLedger)
	})

	// Collection-compatible surface (original backend wire format)
	r.Route("/api", func(r chi.Router) {
		r.Get("/transactions/{userID}", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Get("/usages/{userID}", s.handleListUsages)
		r.Post("/usages", s.handleCreateUsage)

		r.Get("/generations/{userID}", s.handleListGenerations)
		r.Post("/generations", s.handleCreateGeneration)
		r.Delete("/generations/{id}", s.handleDeleteGeneration)
		r.Delete("/generations/user/{userID}", s.handleClearGenerations)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the dashboard frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and latency by route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		observability.HTTPRequestsTotal.WithLabelValues(
			r.Method, pattern, strconv.Itoa(ww.Status()),
		).Inc()
		observability.HTTPRequestDuration.WithLabelValues(
			r.Method, pattern,
		).Observe(time.Since(start).Seconds())
	})
}
