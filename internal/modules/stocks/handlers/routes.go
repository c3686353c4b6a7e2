package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all stock analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stocks", func(r chi.Router) {
		r.Get("/search", h.HandleSearch) // Ticker-name search
		r.Get("/{symbol}", func(w http.ResponseWriter, r *http.Request) {
			symbol := chi.URLParam(r, "symbol")
			h.HandleGetMetrics(w, r, symbol)
		})
	})
}
