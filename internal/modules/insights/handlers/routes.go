package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market insights routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/insights", func(r chi.Router) {
		r.Get("/indices", h.HandleGetIndices) // Tracked index snapshot
		r.Get("/movers", h.HandleGetMovers)   // Top gainers and losers
	})
	r.Get("/news", h.HandleGetNews) // Market news headlines
}
