// internal/app/features/reviews/routes.go
package reviews

import "github.com/go-chi/chi/v5"

// Routes returns the reviews subrouter, mounted under /api/reviews.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/activity/{activityID}", h.GetByActivity)
	r.Get("/user/{userID}", h.GetByUser)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/helpful", h.MarkHelpful)
	return r
}
