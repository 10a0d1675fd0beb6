// internal/app/features/comments/routes.go
package comments

import "github.com/go-chi/chi/v5"

// Routes returns the comments subrouter, mounted under /api/comments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/post/{postID}", h.GetByPost)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/like", h.Like)
	r.Post("/{id}/unlike", h.Unlike)
	return r
}
