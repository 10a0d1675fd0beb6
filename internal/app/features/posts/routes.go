// internal/app/features/posts/routes.go
package posts

import "github.com/go-chi/chi/v5"

// Routes returns the posts subrouter, mounted under /api/posts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/user/{userID}", h.GetByUser)
	r.Get("/activity/{activityID}", h.GetByActivity)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/like", h.Like)
	r.Post("/{id}/unlike", h.Unlike)
	return r
}
