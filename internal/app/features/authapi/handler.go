// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/password"
	"github.com/pitchside/pitchside/internal/app/system/ratelimit"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration and login.
type Handler struct {
	users   *userstore.Store
	tokens  *auth.Manager
	hasher  *password.Hasher
	limiter *ratelimit.LoginLimiter
	log     *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.Manager, hasher *password.Hasher, logger *zap.Logger) *Handler {
	return &Handler{
		users:   userstore.New(db),
		tokens:  tokens,
		hasher:  hasher,
		limiter: ratelimit.NewLoginLimiter(),
		log:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "username and email are required")
		return
	}
	if len(req.Password) < 8 {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("password hashing failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.users.Create(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail), errors.Is(err, userstore.ErrDuplicateUsername):
			httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
		default:
			h.log.Error("user create failed", zap.Error(err))
			httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create account")
		}
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create account")
		return
	}

	httpjson.Write(w, http.StatusCreated, authResponse{Token: token, User: u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the same answer.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if ok, reason := h.limiter.Check(r, req.Email); !ok {
		httpjson.WriteError(w, http.StatusTooManyRequests, httpjson.CodeRateLimited, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "invalid email or password")
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not log in")
		return
	}

	if err := h.hasher.Verify(u.PasswordHash, req.Password); err != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "invalid email or password")
		return
	}
	if !u.IsActive {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "account is disabled")
		return
	}

	h.limiter.ResetEmail(req.Email)

	if err := h.users.TouchLogin(ctx, u.ID); err != nil {
		h.log.Warn("failed to record login time", zap.Error(err))
	}

	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not log in")
		return
	}

	httpjson.Write(w, http.StatusOK, authResponse{Token: token, User: *u})
}
