// internal/app/features/cartas/routes.go
package cartas

import "github.com/go-chi/chi/v5"

// Routes wires the open letters feature (mounted at "/cartas").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Put("/{id}", h.ServeUpdate)
	r.Delete("/{id}", h.ServeDelete)
	r.Post("/{id}/apoiar", h.ServeApoiar)
	return r
}
