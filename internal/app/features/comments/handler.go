// internal/app/features/comments/handler.go
package comments

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	commentstore "github.com/pitchside/pitchside/internal/app/store/comments"
	poststore "github.com/pitchside/pitchside/internal/app/store/posts"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/notify"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves comment endpoints. Comment writes keep the post's
// denormalized comment counter in step.
type Handler struct {
	comments *commentstore.Store
	posts    *poststore.Store
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		comments: commentstore.New(db),
		posts:    poststore.New(db),
		notifier: notifier,
		log:      logger,
	}
}

type createRequest struct {
	PostID          string  `json:"post_id"`
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// Create handles POST /api/comments.
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
	if req.Body == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "body is required")
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid post_id")
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentCommentID != nil {
		id, err := primitive.ObjectIDFromHex(*req.ParentCommentID)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid parent_comment_id")
			return
		}
		parentID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "post not found")
			return
		}
		h.log.Error("post lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create comment")
		return
	}

	cm, err := h.comments.Create(ctx, models.Comment{
		PostID:          postID,
		UserID:          claims.UserID,
		ParentCommentID: parentID,
		Body:            req.Body,
	})
	if err != nil {
		h.log.Error("comment create failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create comment")
		return
	}

	if err := h.posts.IncrementComments(ctx, postID, 1); err != nil {
		h.log.Warn("comment counter update failed", zap.Error(err))
	}
	h.notifier.CommentAdded(ctx, post, &cm, claims.Username)

	httpjson.Write(w, http.StatusCreated, cm)
}

// GetByPost handles GET /api/comments/post/{postID}.
func (h *Handler) GetByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.comments.GetByPost(ctx, postID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, comments)
}

type updateRequest struct {
	Body string `json:"body"`
}

// Update handles PUT /api/comments/{id}. Only the author may edit.
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
	if req.Body == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "body is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cm, err := h.comments.UpdateBody(ctx, id, current, req.Body)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, cm)
}

// Delete handles DELETE /api/comments/{id}. Only the author may delete.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cm, err := h.comments.Delete(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if err := h.posts.IncrementComments(ctx, cm.PostID, -1); err != nil {
		h.log.Warn("comment counter update failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Like handles POST /api/comments/{id}/like.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
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

	cm, err := h.comments.Like(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, cm)
}

// Unlike handles POST /api/comments/{id}/unlike.
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

	cm, err := h.comments.Unlike(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, cm)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, commentstore.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "comment not found")
		return
	}
	h.log.Error("comment store error", zap.Error(err))
	httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "comment operation failed")
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
