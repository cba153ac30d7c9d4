package generation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers plan generation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/plans", func(r chi.Router) {
		r.Post("/generate", h.GenerateDocument)
		r.Post("/generate-ab", h.GenerateABVariants)
	})
}
