// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// Routes wires the dashboard feature under whatever mount point the
// top-level router chooses (usually "/").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDashboard)
	r.Post("/saberes/{id}/valorizar", h.ServeValorizar)
	r.Post("/saberes/{id}/compartilhar", h.ServeCompartilhar)
	return r
}
