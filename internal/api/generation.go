package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trymyra/walletd/internal/domain"
)

// ─── Generations API ────────────────────────────────────────────────────────
//
// GET    /api/generations/{userID}      — generation history, newest first
// POST   /api/generations               — record a produced asset
// DELETE /api/generations/{id}          — remove one record
// DELETE /api/generations/user/{userID} — clear a user's history

// handleListGenerations returns a user's generation records.
func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	gens, err := s.generations.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gens)
}

// handleCreateGeneration records a new generation.
func (s *Server) handleCreateGeneration(w http.ResponseWriter, r *http.Request) {
	var g domain.Generation
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if g.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	saved, err := s.generations.Add(r.Context(), g)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntry) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleDeleteGeneration removes one generation record.
func (s *Server) handleDeleteGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.generations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "generation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleClearGenerations removes all of a user's generation records.
// Ledger entries are untouched.
func (s *Server) handleClearGenerations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.generations.ClearHistory(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
