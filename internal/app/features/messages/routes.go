// internal/app/features/messages/routes.go
package messages

import "github.com/go-chi/chi/v5"

// Routes returns the messages subrouter, mounted under /api/messages.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/conversation/{conversationID}", h.GetByConversation)
	r.Post("/{id}/read", h.MarkRead)
	r.Delete("/{id}", h.Delete)
	return r
}
