// internal/app/features/activities/routes.go
package activities

import "github.com/go-chi/chi/v5"

// Routes returns the activities subrouter, mounted under /api/activities.
// Literal segments are registered before the {id} pattern so "search",
// "active", etc. never parse as ids.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/active", h.GetActive)
	r.Get("/unique/{uniqueID}", h.GetByUniqueID)
	r.Get("/user/{userID}", h.GetByUser)
	r.Get("/type/{sportType}", h.GetBySportType)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/join", h.Join)
	r.Post("/{id}/leave", h.Leave)
	return r
}
