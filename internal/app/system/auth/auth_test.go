package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newManager() *auth.Manager {
	return auth.NewManager("test-secret-0123456789", "pitchside-test", time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	m := newManager()
	userID := primitive.NewObjectID()

	token, err := m.Issue(userID, "alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID: got %v, want %v", claims.UserID, userID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username: got %q, want %q", claims.Username, "alice")
	}
}

func TestVerify_Empty(t *testing.T) {
	m := newManager()
	_, err := m.Verify("")
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Errorf("got %v, want ErrMissingToken", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newManager()
	token, err := m.Issue(primitive.NewObjectID(), "bob")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := auth.NewManager("a-different-secret", "pitchside-test", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := auth.NewManager("test-secret-0123456789", "pitchside-test", -time.Minute)
	token, err := m.Issue(primitive.NewObjectID(), "eve")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestRequire(t *testing.T) {
	m := newManager()
	userID := primitive.NewObjectID()
	token, err := m.Issue(userID, "carol")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotID primitive.ObjectID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.CurrentUserID(r)
		if !ok {
			t.Error("expected claims in context")
		}
		gotID = id
	})

	// With a valid token
	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.Require(inner).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with token: got %d, want 200", rec.Code)
	}
	if gotID != userID {
		t.Errorf("context user id: got %v, want %v", gotID, userID)
	}

	// Without a token
	req = httptest.NewRequest("GET", "/api/users", nil)
	rec = httptest.NewRecorder()
	m.Require(inner).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without token: got %d, want 401", rec.Code)
	}

	// With garbage
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	m.Require(inner).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with bad token: got %d, want 401", rec.Code)
	}
}
