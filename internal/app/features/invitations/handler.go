// internal/app/features/invitations/handler.go
package invitations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	invitationstore "github.com/pitchside/pitchside/internal/app/store/invitations"
	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves activity invitation endpoints.
type Handler struct {
	invitations *invitationstore.Store
	activities  *activitystore.Store
	users       *userstore.Store
	notifier    *notify.Notifier
	log         *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		invitations: invitationstore.New(db),
		activities:  activitystore.New(db),
		users:       userstore.New(db),
		notifier:    notifier,
		log:         logger,
	}
}

type createRequest struct {
	ActivityID string `json:"activity_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// Create handles POST /api/invitations. Only participants may invite others
// to an activity.
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
	activityID, err := primitive.ObjectIDFromHex(req.ActivityID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid activity_id")
		return
	}
	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid receiver_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	act, err := h.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "activity not found")
			return
		}
		h.log.Error("activity lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create invitation")
		return
	}
	if !act.HasParticipant(claims.UserID) {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "only participants may send invitations")
		return
	}
	if act.HasParticipant(receiverID) {
		httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, "user already joined this activity")
		return
	}
	exists, err := h.users.Exists(ctx, receiverID)
	if err != nil {
		h.log.Error("receiver lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create invitation")
		return
	}
	if !exists {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "receiver not found")
		return
	}

	inv, err := h.invitations.Create(ctx, models.ActivityInvitation{
		ActivityID: activityID,
		SenderID:   claims.UserID,
		ReceiverID: receiverID,
		Message:    req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, invitationstore.ErrSelfInvite):
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, err.Error())
		case errors.Is(err, invitationstore.ErrDuplicateInvite):
			httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
		default:
			h.log.Error("invitation create failed", zap.Error(err))
			httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create invitation")
		}
		return
	}

	h.notifier.Invited(ctx, &inv, act.Name, claims.Username)

	httpjson.Write(w, http.StatusCreated, inv)
}

// ListReceived handles GET /api/invitations: invitations addressed to the
// current user, pending first.
func (h *Handler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.invitations.GetReceived)
}

// ListSent handles GET /api/invitations/sent.
func (h *Handler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.invitations.GetSent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, op func(context.Context, primitive.ObjectID) ([]models.ActivityInvitation, error)) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invs, err := op(ctx, current)
	if err != nil {
		h.log.Error("invitation list failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not list invitations")
		return
	}
	httpjson.Write(w, http.StatusOK, invs)
}

// Accept handles POST /api/invitations/{id}/accept. Accepting joins the
// activity under the same capacity rules as a direct join; a full activity
// leaves the invitation pending and answers 409.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	inv, err := h.invitations.Respond(ctx, id, current, models.InviteStatusAccepted)
	if err != nil {
		h.writeRespondError(w, err)
		return
	}

	if _, err := h.activities.Join(ctx, inv.ActivityID, current); err != nil {
		switch {
		case errors.Is(err, activitystore.ErrAlreadyJoined):
			// Already in, accept stands.
		case errors.Is(err, activitystore.ErrActivityFull):
			h.revertToPending(ctx, id)
			httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
			return
		case errors.Is(err, activitystore.ErrNotFound):
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "activity not found")
			return
		default:
			h.log.Error("invitation join failed", zap.Error(err))
			httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not accept invitation")
			return
		}
	}

	httpjson.Write(w, http.StatusOK, inv)
}

// revertToPending undoes an accept whose join bounced off a full activity, so
// the receiver can retry once a slot frees up.
func (h *Handler) revertToPending(ctx context.Context, id primitive.ObjectID) {
	if err := h.invitations.Reopen(ctx, id); err != nil {
		h.log.Error("failed to reopen invitation", zap.String("invitation_id", id.Hex()), zap.Error(err))
	}
}

// Decline handles POST /api/invitations/{id}/decline.
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.invitations.Respond(ctx, id, current, models.InviteStatusDeclined)
	if err != nil {
		h.writeRespondError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, inv)
}

func (h *Handler) writeRespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invitationstore.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "invitation not found")
	case errors.Is(err, invitationstore.ErrNotPending), errors.Is(err, invitationstore.ErrExpired):
		httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
	default:
		h.log.Error("invitation store error", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "invitation operation failed")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
