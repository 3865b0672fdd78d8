// internal/app/features/territorios/routes.go
package territorios

import "github.com/go-chi/chi/v5"

// Routes wires the territory map (mounted at "/territorios").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeMap)
	r.Post("/{id}/regioes", h.ServeMarcarRegioes)
	return r
}
