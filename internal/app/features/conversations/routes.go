// internal/app/features/conversations/routes.go
package conversations

import "github.com/go-chi/chi/v5"

// Routes returns the conversations subrouter, mounted under /api/conversations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
