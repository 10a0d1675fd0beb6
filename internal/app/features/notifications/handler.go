// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	notificationstore "github.com/pitchside/pitchside/internal/app/store/notifications"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/paging"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves in-app notification endpoints for the current user.
type Handler struct {
	notifications *notificationstore.Store
	log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{notifications: notificationstore.New(db), log: logger}
}

// List handles GET /api/notifications?limit=&offset=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}
	page := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ns, err := h.notifications.GetByUser(ctx, current, page.Limit)
	if err != nil {
		h.log.Error("notification list failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not list notifications")
		return
	}
	httpjson.Write(w, http.StatusOK, ns)
}

// UnreadCount handles GET /api/notifications/unread/count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.notifications.UnreadCount(ctx, current)
	if err != nil {
		h.log.Error("unread count failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not count notifications")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"unread": n})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.notifications.MarkRead(ctx, id, current); err != nil {
		if errors.Is(err, notificationstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "notification not found")
			return
		}
		h.log.Error("mark read failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not mark notification")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.notifications.MarkAllRead(ctx, current)
	if err != nil {
		h.log.Error("mark all read failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not mark notifications")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"marked": n})
}
