// internal/app/features/settings/routes.go
package settings

import "github.com/go-chi/chi/v5"

// Routes returns the settings subrouter, mounted under /api/settings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	return r
}
