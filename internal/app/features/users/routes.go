// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the users subrouter, mounted under /api/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/username/{username}", h.GetByUsername)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
