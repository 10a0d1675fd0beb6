// internal/app/features/invitations/routes.go
package invitations

import "github.com/go-chi/chi/v5"

// Routes returns the invitations subrouter, mounted under /api/invitations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListReceived)
	r.Get("/sent", h.ListSent)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/decline", h.Decline)
	return r
}
