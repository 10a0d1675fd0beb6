// internal/app/features/follows/handler.go
package follows

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	followstore "github.com/pitchside/pitchside/internal/app/store/follows"
	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves social graph endpoints.
type Handler struct {
	follows  *followstore.Store
	users    *userstore.Store
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		follows:  followstore.New(db),
		users:    userstore.New(db),
		notifier: notifier,
		log:      logger,
	}
}

type followRequest struct {
	FollowingID string `json:"following_id"`
}

// Create handles POST /api/follows.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req followRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	followingID, err := primitive.ObjectIDFromHex(req.FollowingID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid following_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	exists, err := h.users.Exists(ctx, followingID)
	if err != nil {
		h.log.Error("followee lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not follow")
		return
	}
	if !exists {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "user not found")
		return
	}

	f, err := h.follows.Create(ctx, claims.UserID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, followstore.ErrSelfFollow):
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, err.Error())
		case errors.Is(err, followstore.ErrDuplicateFollow):
			httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
		default:
			h.log.Error("follow create failed", zap.Error(err))
			httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not follow")
		}
		return
	}

	h.notifier.Followed(ctx, followingID, claims.UserID, claims.Username)

	httpjson.Write(w, http.StatusCreated, f)
}

// Delete handles DELETE /api/follows/{followingID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	followingID, ok := pathID(w, r, "followingID")
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

	if err := h.follows.Delete(ctx, current, followingID); err != nil {
		if errors.Is(err, followstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "not following this user")
			return
		}
		h.log.Error("unfollow failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not unfollow")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "unfollowed"})
}

// Followers handles GET /api/follows/followers/{userID}.
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.follows.Followers)
}

// Following handles GET /api/follows/following/{userID}.
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, h.follows.Following)
}

func (h *Handler) edgeList(w http.ResponseWriter, r *http.Request, op func(context.Context, primitive.ObjectID) ([]primitive.ObjectID, error)) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := op(ctx, userID)
	if err != nil {
		h.log.Error("follow edge query failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not list follows")
		return
	}
	httpjson.Write(w, http.StatusOK, ids)
}

// Check handles GET /api/follows/check/{userID}: does the current user follow
// the given user?
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	following, err := h.follows.IsFollowing(ctx, current, userID)
	if err != nil {
		h.log.Error("follow check failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not check follow")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"following": following})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
