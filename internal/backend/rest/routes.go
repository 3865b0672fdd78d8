// internal/backend/rest/routes.go
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes mounts the status endpoint and every collection. An empty
// origins list allows any origin.
func Routes(h *Handler, origins []string) chi.Router {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/status", h.Status)
	r.Route("/{collection}", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Patch)
		r.Put("/{id}", h.Put)
		r.Delete("/{id}", h.Delete)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { notFound(w) })
	return r
}
