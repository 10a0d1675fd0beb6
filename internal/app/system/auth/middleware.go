// internal/app/system/auth/middleware.go
package auth

import (
	"net/http"
	"strings"

	"github.com/pitchside/pitchside/internal/app/system/httpjson"
)

// Require rejects requests without a valid bearer token and otherwise
// injects the verified claims into the request context.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "invalid bearer token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
