// internal/app/features/reviews/handler.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	reviewstore "github.com/pitchside/pitchside/internal/app/store/reviews"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves review endpoints.
type Handler struct {
	reviews    *reviewstore.Store
	activities *activitystore.Store
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		reviews:    reviewstore.New(db),
		activities: activitystore.New(db),
		log:        logger,
	}
}

type createRequest struct {
	ReviewType string  `json:"review_type"`
	ActivityID *string `json:"activity_id"`
	RevieweeID *string `json:"reviewee_id"`
	Rating     int     `json:"rating"`
	Title      string  `json:"title"`
	Comment    string  `json:"comment"`
}

// Create handles POST /api/reviews. Activity reviews must reference an
// existing activity; user reviews must name a reviewee.
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

	rev := models.Review{
		ReviewType: req.ReviewType,
		ReviewerID: current,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	switch req.ReviewType {
	case models.ReviewActivity:
		if req.ActivityID == nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "activity_id is required for activity reviews")
			return
		}
		id, err := primitive.ObjectIDFromHex(*req.ActivityID)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid activity_id")
			return
		}
		if _, err := h.activities.GetByID(ctx, id); err != nil {
			if errors.Is(err, activitystore.ErrNotFound) {
				httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "activity not found")
				return
			}
			h.log.Error("activity lookup failed", zap.Error(err))
			httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create review")
			return
		}
		rev.ActivityID = &id
	case models.ReviewUser:
		if req.RevieweeID == nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "reviewee_id is required for user reviews")
			return
		}
		id, err := primitive.ObjectIDFromHex(*req.RevieweeID)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid reviewee_id")
			return
		}
		rev.RevieweeID = &id
	default:
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "review_type must be activity or user")
		return
	}

	created, err := h.reviews.Create(ctx, rev)
	if err != nil {
		if errors.Is(err, reviewstore.ErrBadRating) {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, err.Error())
			return
		}
		h.log.Error("review create failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create review")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// GetByActivity handles GET /api/reviews/activity/{activityID}.
func (h *Handler) GetByActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reviews, err := h.reviews.GetByActivity(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, reviews)
}

// GetByUser handles GET /api/reviews/user/{userID}.
func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reviews, err := h.reviews.GetByReviewee(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, reviews)
}

type updateRequest struct {
	Rating  patch.Field[int]    `json:"rating"`
	Title   patch.Field[string] `json:"title"`
	Comment patch.Field[string] `json:"comment"`
}

// Update handles PUT /api/reviews/{id}. Only the reviewer may edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Rating.IsNull() {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "rating cannot be cleared")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rev, err := h.reviews.Apply(ctx, id, current, reviewstore.Update{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, reviewstore.ErrBadRating) {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, rev)
}

// Delete handles DELETE /api/reviews/{id}. Only the reviewer may delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviews.Delete(ctx, id, current); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MarkHelpful handles POST /api/reviews/{id}/helpful.
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
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

	rev, err := h.reviews.MarkHelpful(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, rev)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, reviewstore.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "review not found")
		return
	}
	h.log.Error("review store error", zap.Error(err))
	httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "review operation failed")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
