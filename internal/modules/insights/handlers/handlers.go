// Package handlers provides HTTP handlers for market insights operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/modules/insights"
	"github.com/rs/zerolog"
)

// Handler handles market insights HTTP requests
type Handler struct {
	service *insights.Service
	log     zerolog.Logger
}

// NewHandler creates a new insights handler
func NewHandler(service *insights.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "insights").Logger(),
	}
}

// HandleGetIndices handles GET /insights/indices
func (h *Handler) HandleGetIndices(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.IndexSnapshot(r.Context())

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"indices": snapshot,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetMovers handles GET /insights/movers?limit=
func (h *Handler) HandleGetMovers(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	gainers, losers := h.service.TopMovers(r.Context(), limit)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"gainers": gainers,
			"losers":  losers,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetNews handles GET /insights/news
func (h *Handler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.News(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to fetch news feed")
		http.Error(w, "Failed to fetch news feed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"items": items,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
