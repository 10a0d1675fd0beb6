package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/domain/models"
	"github.com/pitchside/pitchside/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_NormalizesIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	u, err := store.Create(ctx, models.User{
		Username:     "PlayMaker",
		Email:        "  PlayMaker@Example.COM ",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "playmaker@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", u.Email)
	}
	if u.Username != "PlayMaker" {
		t.Errorf("username = %q, want original casing preserved", u.Username)
	}
	if !u.IsActive {
		t.Error("new users should start active")
	}

	// Lookup is case-insensitive through the folded column.
	got, err := store.GetByUsername(ctx, "playmaker")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Error("case-insensitive username lookup returned wrong user")
	}
}

func TestStore_Create_DuplicateClassification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{Username: "casey", Email: "casey@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err := store.Create(ctx, models.User{Username: "casey2", Email: "Casey@example.com", PasswordHash: "h"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("same email, new username: err = %v, want ErrDuplicateEmail", err)
	}

	_, err = store.Create(ctx, models.User{Username: "CASEY", Email: "other@example.com", PasswordHash: "h"})
	if !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("same username, new email: err = %v, want ErrDuplicateUsername", err)
	}
}

func TestStore_Apply_TriState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	u := fx.CreateUser(ctx, "drew", "drew@example.com")

	// Seed a bio and coordinates, then exercise all three field states in
	// one patch: set, clear, leave alone.
	lat, lon := 51.0543, 3.7174
	if _, err := store.Apply(ctx, u.ID, userstore.Update{
		Bio:       patch.Set("plays goalie"),
		Latitude:  patch.Set(lat),
		Longitude: patch.Set(lon),
	}); err != nil {
		t.Fatalf("seed patch: %v", err)
	}

	got, err := store.Apply(ctx, u.ID, userstore.Update{
		Name:      patch.Set("Drew G."),
		Latitude:  patch.Null[float64](),
		Longitude: patch.Null[float64](),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Name != "Drew G." {
		t.Errorf("name = %q", got.Name)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Error("null patch should clear coordinates")
	}
	if got.Bio != "plays goalie" {
		t.Errorf("absent field was modified: bio = %q", got.Bio)
	}
}

func TestStore_Apply_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	_, err := store.Apply(ctx, primitive.NewObjectID(), userstore.Update{Name: patch.Set("x")})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
