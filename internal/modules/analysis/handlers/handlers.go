// Package handlers provides HTTP handlers for portfolio analysis operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/modules/analysis"
	"github.com/rs/zerolog"
)

// Handler handles portfolio analysis HTTP requests
type Handler struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(service *analysis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

// analyzeRequest is the request body for POST /portfolio/analyze.
// Either a parsed weight map or the textual one-per-line "SYM:WEIGHT" form.
type analyzeRequest struct {
	Weights   map[string]float64 `json:"weights,omitempty"`
	Portfolio string             `json:"portfolio,omitempty"`
}

// HandleAnalyze handles POST /portfolio/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	weights := req.Weights
	if len(weights) == 0 && req.Portfolio != "" {
		weights = ParseWeights(req.Portfolio)
	}

	report, err := h.service.Analyze(r.Context(), weights)
	if err != nil {
		// Input errors are surfaced verbatim to the caller.
		if errors.Is(err, analysis.ErrEmptyPortfolio) || errors.Is(err, analysis.ErrZeroWeight) {
			http.Error(w, "Error: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.log.Error().Err(err).Msg("Analysis failed")
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"report": report,
			"text":   analysis.RenderText(report),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// ParseWeights parses the textual weight map form: one "SYMBOL:WEIGHT" pair
// per line, symbols case-insensitive. Malformed lines (missing colon,
// non-numeric weight) are skipped; a repeated symbol takes the last value.
func ParseWeights(text string) map[string]float64 {
	weights := make(map[string]float64)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		symbol, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}

		weights[symbol] = weight
	}

	return weights
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
