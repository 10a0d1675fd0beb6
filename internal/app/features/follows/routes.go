// internal/app/features/follows/routes.go
package follows

import "github.com/go-chi/chi/v5"

// Routes returns the follows subrouter, mounted under /api/follows.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/followers/{userID}", h.Followers)
	r.Get("/following/{userID}", h.Following)
	r.Get("/check/{userID}", h.Check)
	r.Delete("/{followingID}", h.Delete)
	return r
}
