// internal/app/features/posts/handler.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	poststore "github.com/pitchside/pitchside/internal/app/store/posts"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/paging"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves feed post endpoints.
type Handler struct {
	posts    *poststore.Store
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		posts:    poststore.New(db),
		notifier: notifier,
		log:      logger,
	}
}

type createRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	PostType   string   `json:"post_type"`
	ActivityID *string  `json:"activity_id"`
	MediaURLs  []string `json:"media_urls"`
	Visibility string   `json:"visibility"`
	Tags       []string `json:"tags"`
}

// Create handles POST /api/posts.
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
	if req.Body == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "body is required")
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.posts.Create(ctx, models.Post{
		UserID:     current,
		ActivityID: activityID,
		Title:      req.Title,
		Body:       req.Body,
		PostType:   req.PostType,
		MediaURLs:  req.MediaURLs,
		Visibility: req.Visibility,
		Tags:       req.Tags,
	})
	if err != nil {
		h.log.Error("post create failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create post")
		return
	}
	httpjson.Write(w, http.StatusCreated, p)
}

// List handles GET /api/posts?limit=&offset=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.List(ctx, page.Limit, page.Offset)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// GetByUser handles GET /api/posts/user/{userID}.
func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.GetByUser(ctx, userID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

// GetByActivity handles GET /api/posts/activity/{activityID}.
func (h *Handler) GetByActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.posts.GetByActivity(ctx, activityID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, posts)
}

type updateRequest struct {
	Title      patch.Field[string]   `json:"title"`
	Body       patch.Field[string]   `json:"body"`
	MediaURLs  patch.Field[[]string] `json:"media_urls"`
	Visibility patch.Field[string]   `json:"visibility"`
	IsPinned   patch.Field[bool]     `json:"is_pinned"`
	Tags       patch.Field[[]string] `json:"tags"`
}

// Update handles PUT /api/posts/{id}. Only the author may edit.
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
	if req.Body.IsNull() {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "body cannot be cleared")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.posts.Apply(ctx, id, current, poststore.Update{
		Title:      req.Title,
		Body:       req.Body,
		MediaURLs:  req.MediaURLs,
		Visibility: req.Visibility,
		IsPinned:   req.IsPinned,
		Tags:       req.Tags,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// Delete handles DELETE /api/posts/{id}. Only the author may delete.
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

	if err := h.posts.Delete(ctx, id, current); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Like handles POST /api/posts/{id}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, err := h.posts.Like(ctx, id, claims.UserID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.notifier.PostLiked(ctx, p, claims.UserID, claims.Username)

	httpjson.Write(w, http.StatusOK, p)
}

// Unlike handles POST /api/posts/{id}/unlike.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.posts.Unlike(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, poststore.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "post not found")
		return
	}
	h.log.Error("post store error", zap.Error(err))
	httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "post operation failed")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
