// internal/app/features/onboarding/routes.go
package onboarding

import "github.com/go-chi/chi/v5"

// Routes wires the wizard (mounted at Path, outside the Gate).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeWizard)
	r.Post("/", h.ServeSubmit)
	return r
}
