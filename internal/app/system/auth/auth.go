// internal/app/system/auth/auth.go

// Package auth issues and verifies the bearer tokens protecting the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps parsing/validation failures.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Claims is what a verified token carries about the caller.
type Claims struct {
	UserID   primitive.ObjectID
	Username string
}

// Manager signs and verifies HS256 JWTs.
type Manager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewManager returns a token Manager with the given signing secret, issuer
// claim, and token lifetime.
func NewManager(secret, issuer string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, expiry: expiry}
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issue signs a token for the given user.
func (m *Manager) Issue(userID primitive.ObjectID, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			ID:        primitive.NewObjectID().Hex(),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning the caller claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return &Claims{UserID: userID, Username: claims.Username}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context plumbing                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const claimsKey ctxKey = "currentClaims"

// WithClaims stores verified claims on the context.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext retrieves claims stored by the middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// CurrentUserID returns the authenticated caller's user id.
func CurrentUserID(r *http.Request) (primitive.ObjectID, bool) {
	c, ok := FromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	return c.UserID, true
}
