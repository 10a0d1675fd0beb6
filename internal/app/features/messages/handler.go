// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	conversationstore "github.com/pitchside/pitchside/internal/app/store/conversations"
	messagestore "github.com/pitchside/pitchside/internal/app/store/messages"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves message endpoints.
type Handler struct {
	messages      *messagestore.Store
	conversations *conversationstore.Store
	notifier      *notify.Notifier
	log           *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		messages:      messagestore.New(db),
		conversations: conversationstore.New(db),
		notifier:      notifier,
		log:           logger,
	}
}

type createRequest struct {
	ConversationID string  `json:"conversation_id"`
	Content        string  `json:"content"`
	MessageType    string  `json:"message_type"`
	MediaURL       string  `json:"media_url"`
	ActivityID     *string `json:"activity_id"`
}

// Create handles POST /api/messages.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	conversationID, err := primitive.ObjectIDFromHex(req.ConversationID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid conversation_id")
		return
	}
	if req.Content == "" && req.MediaURL == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "content or media_url is required")
		return
	}

	var activityID *primitive.ObjectID
	if req.ActivityID != nil {
		id, err := primitive.ObjectIDFromHex(*req.ActivityID)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid activity_id")
			return
		}
		activityID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	m, err := h.messages.Create(ctx, models.Message{
		ConversationID: conversationID,
		SenderID:       claims.UserID,
		MessageType:    req.MessageType,
		Content:        req.Content,
		MediaURL:       req.MediaURL,
		ActivityID:     activityID,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	if conv, convErr := h.conversations.GetByID(ctx, conversationID); convErr == nil {
		h.notifier.MessageSent(ctx, conv, &m, claims.Username)
	}

	httpjson.Write(w, http.StatusCreated, m)
}

// GetByConversation handles GET /api/messages/conversation/{conversationID}.
func (h *Handler) GetByConversation(w http.ResponseWriter, r *http.Request) {
	conversationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "conversationID"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.messages.GetByConversation(ctx, conversationID, current, 0)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	// Soft-deleted messages keep their slot but lose their content.
	for i := range msgs {
		if msgs[i].IsDeleted {
			msgs[i].Content = ""
			msgs[i].MediaURL = ""
		}
	}
	httpjson.Write(w, http.StatusOK, msgs)
}

// MarkRead handles POST /api/messages/{id}/read.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.messages.MarkRead(ctx, id, current); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "read"})
}

// Delete handles DELETE /api/messages/{id} (soft delete, sender only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.messages.Delete(ctx, id, current); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, messagestore.ErrNotFound), errors.Is(err, conversationstore.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "not found")
	case errors.Is(err, messagestore.ErrNotAParticipant):
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, err.Error())
	default:
		h.log.Error("message store error", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "message operation failed")
	}
}
