// internal/app/features/comunidades/routes.go
package comunidades

import "github.com/go-chi/chi/v5"

// Routes wires the communities listing (mounted at "/comunidades").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/virtuais/{id}/participar", h.ServeParticipar)
	return r
}
