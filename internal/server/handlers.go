package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storegenius/storegenius/internal/enrich"
	"github.com/storegenius/storegenius/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetSuggestions runs the full pipeline: trending titles, trend
// extraction, suggestions and image resolution.
func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	categories, err := s.enricher.Enrich(r.Context())
	if err != nil {
		if errors.IsNoTrendError(err) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "no trend found",
			})
			return
		}
		slog.Error("enrichment failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    categories,
	})
}

// handleSuggest enriches an arbitrary caller-supplied prompt and returns a
// flat product list.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	prompt := r.URL.Query().Get("prompt")
	if prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing 'prompt' query parameter",
		})
		return
	}

	products, err := s.enricher.EnrichFlat(r.Context(), prompt)
	if err != nil {
		slog.Error("prompt enrichment failed", "prompt", prompt, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch suggestions",
		})
		return
	}

	if products == nil {
		products = []enrich.FlatProduct{}
	}
	writeJSON(w, http.StatusOK, products)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
