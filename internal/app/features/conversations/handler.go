// internal/app/features/conversations/handler.go
package conversations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	conversationstore "github.com/pitchside/pitchside/internal/app/store/conversations"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves conversation endpoints.
type Handler struct {
	conversations *conversationstore.Store
	log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{conversations: conversationstore.New(db), log: logger}
}

type createRequest struct {
	ParticipantIDs []string `json:"participant_ids"`
	Type           string   `json:"conversation_type"`
	ActivityID     *string  `json:"activity_id"`
	Name           string   `json:"name"`
}

// Create handles POST /api/conversations. The current user is always a
// participant, listed or not.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	participants := []primitive.ObjectID{current}
	for _, raw := range req.ParticipantIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid participant id")
			return
		}
		participants = append(participants, id)
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	conv, err := h.conversations.Create(ctx, models.Conversation{
		Participants: participants,
		Type:         req.Type,
		ActivityID:   activityID,
		Name:         req.Name,
	})
	if err != nil {
		if errors.Is(err, conversationstore.ErrTooFewParticipants) {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, err.Error())
			return
		}
		h.log.Error("conversation create failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create conversation")
		return
	}
	httpjson.Write(w, http.StatusCreated, conv)
}

// List handles GET /api/conversations: the current user's conversations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	convs, err := h.conversations.GetByUser(ctx, current)
	if err != nil {
		h.log.Error("conversation list failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not list conversations")
		return
	}
	httpjson.Write(w, http.StatusOK, convs)
}

// Get handles GET /api/conversations/{id}. Only participants may read.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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

	conv, err := h.conversations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, conversationstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "conversation not found")
			return
		}
		h.log.Error("conversation lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "conversation lookup failed")
		return
	}
	if !conv.HasParticipant(current) {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "not a participant of this conversation")
		return
	}
	httpjson.Write(w, http.StatusOK, conv)
}
