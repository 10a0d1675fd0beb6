// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsUser injects bearer-token claims for userID into the request context,
// bypassing token verification for handler tests.
func AsUser(r *http.Request, userID primitive.ObjectID, username string) *http.Request {
	claims := &auth.Claims{UserID: userID, Username: username}
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}
