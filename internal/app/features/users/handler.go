// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/paging"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves user profile endpoints.
type Handler struct {
	users *userstore.Store
	log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{users: userstore.New(db), log: logger}
}

// List handles GET /api/users?limit=&offset=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.users.List(ctx, page.Limit, page.Offset)
	if err != nil {
		h.log.Error("user list failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not list users")
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByID(ctx, id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// GetByUsername handles GET /api/users/username/{username}.
func (h *Handler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByUsername(ctx, username)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// updateRequest mirrors userstore.Update with tri-state fields: absent keys
// leave the profile untouched, null keys clear optional fields.
type updateRequest struct {
	Name           patch.Field[string]    `json:"name"`
	FirstName      patch.Field[string]    `json:"first_name"`
	LastName       patch.Field[string]    `json:"last_name"`
	Bio            patch.Field[string]    `json:"bio"`
	ProfileImage   patch.Field[string]    `json:"profile_image"`
	PhoneNumber    patch.Field[string]    `json:"phone_number"`
	DateOfBirth    patch.Field[time.Time] `json:"date_of_birth"`
	Gender         patch.Field[string]    `json:"gender"`
	Location       patch.Field[string]    `json:"location"`
	Latitude       patch.Field[float64]   `json:"latitude"`
	Longitude      patch.Field[float64]   `json:"longitude"`
	PreferredSport patch.Field[string]    `json:"preferred_sport"`
	SkillLevel     patch.Field[string]    `json:"skill_level"`
}

// Update handles PUT /api/users/{id}. Users may only update themselves.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok || current != id {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "cannot update another user's profile")
		return
	}

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	// Coordinates move together.
	if req.Latitude.Present() != req.Longitude.Present() ||
		req.Latitude.IsNull() != req.Longitude.IsNull() {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "latitude and longitude must be set or cleared together")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.users.Apply(ctx, id, userstore.Update{
		Name:           req.Name,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		ProfileImage:   req.ProfileImage,
		PhoneNumber:    req.PhoneNumber,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		PreferredSport: req.PreferredSport,
		SkillLevel:     req.SkillLevel,
	})
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// Delete handles DELETE /api/users/{id}. Users may only delete themselves.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok || current != id {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "cannot delete another user's account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.users.Delete(ctx, id); err != nil {
		h.writeLookupError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "user not found")
		return
	}
	h.log.Error("user store error", zap.Error(err))
	httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "user lookup failed")
}

// pathID parses an ObjectID URL parameter, answering 400 on bad input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
