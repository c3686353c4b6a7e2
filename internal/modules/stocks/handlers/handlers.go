// Package handlers provides HTTP handlers for stock analysis operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/modules/stocks"
	"github.com/rs/zerolog"
)

// Handler handles stock analysis HTTP requests
type Handler struct {
	service *stocks.Service
	log     zerolog.Logger
}

// NewHandler creates a new stocks handler
func NewHandler(service *stocks.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "stocks").Logger(),
	}
}

// HandleGetMetrics handles GET /stocks/{symbol}
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	metrics, err := h.service.GetMetrics(r.Context(), symbol)
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to get stock metrics")
		http.Error(w, "Failed to get stock metrics", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": metrics,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleSearch handles GET /stocks/search?q=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "Query parameter q is required", http.StatusBadRequest)
		return
	}

	matches, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.log.Warn().Err(err).Str("query", query).Msg("Ticker search failed")
		http.Error(w, "Ticker search failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"matches": matches,
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
