package settingsstore_test

import (
	"testing"

	settingsstore "github.com/pitchside/pitchside/internal/app/store/settings"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/testutil"
)

func TestStore_Get_LazyDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := settingsstore.New(db)

	u := fx.CreateUser(ctx, "alice", "alice@example.com")

	s, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !s.NotifyOnFollow || !s.NotifyOnMessage {
		t.Error("defaults should have notifications enabled")
	}

	// A second Get returns the same document, not a fresh one.
	again, err := store.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if again.ID != s.ID {
		t.Error("Get created a second settings document")
	}
}

func TestStore_Apply_TogglesSurvive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := settingsstore.New(db)

	u := fx.CreateUser(ctx, "bob", "bob@example.com")

	s, err := store.Apply(ctx, u.ID, settingsstore.Update{
		NotifyOnLike: patch.Set(false),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.NotifyOnLike {
		t.Error("notify_on_like should be off")
	}
	if !s.NotifyOnComment {
		t.Error("untouched toggle should keep its default")
	}
}
