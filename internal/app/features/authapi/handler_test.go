package authapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitchside/pitchside/internal/app/features/authapi"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/password"
	"github.com/pitchside/pitchside/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T) *authapi.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewManager("test-secret", "pitchside-test", time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	return authapi.NewHandler(db, tokens, hasher, zap.NewNop())
}

func register(t *testing.T, h *authapi.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	return rec
}

func TestRegister_And_Login(t *testing.T) {
	h := newHandler(t)

	rec := register(t, h, `{"username":"alice","email":"alice@example.com","password":"hunter2hunter2","name":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse register response: %v", err)
	}
	if created.Data.Token == "" {
		t.Error("expected a token in the register response")
	}
	if created.Data.User.Email != "alice@example.com" {
		t.Errorf("email = %q", created.Data.User.Email)
	}

	// Password hash must never appear in the payload.
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("register response leaks password_hash")
	}

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"hunter2hunter2"}`))
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, req)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login status = %d; body: %s", loginRec.Code, loginRec.Body.String())
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing username", `{"email":"a@example.com","password":"longenough"}`, http.StatusBadRequest},
		{"missing email", `{"username":"a","password":"longenough"}`, http.StatusBadRequest},
		{"short password", `{"username":"a","email":"a@example.com","password":"short"}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := register(t, h, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHandler(t)

	if rec := register(t, h, `{"username":"bob","email":"bob@example.com","password":"longenough"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", rec.Code)
	}
	rec := register(t, h, `{"username":"robert","email":"Bob@Example.com","password":"longenough"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email register status = %d, want 409; body: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHandler(t)

	if rec := register(t, h, `{"username":"carol","email":"carol@example.com","password":"longenough"}`); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	for _, body := range []string{
		`{"email":"carol@example.com","password":"wrong-password"}`,
		`{"email":"nobody@example.com","password":"longenough"}`,
	} {
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("login status = %d, want 401", rec.Code)
		}
	}
}
