package followstore_test

import (
	"errors"
	"testing"

	followstore "github.com/pitchside/pitchside/internal/app/store/follows"
	"github.com/pitchside/pitchside/internal/testutil"
)

func TestStore_FollowLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := followstore.New(db)

	alice := fx.CreateUser(ctx, "alice", "alice@example.com")
	bob := fx.CreateUser(ctx, "bob", "bob@example.com")

	if _, err := store.Create(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	following, err := store.IsFollowing(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Error("alice should be following bob")
	}
	if reverse, _ := store.IsFollowing(ctx, bob.ID, alice.ID); reverse {
		t.Error("follow edges are directional; bob does not follow alice")
	}

	_, err = store.Create(ctx, alice.ID, bob.ID)
	if !errors.Is(err, followstore.ErrDuplicateFollow) {
		t.Errorf("second follow err = %v, want ErrDuplicateFollow", err)
	}

	followers, err := store.Followers(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Followers: %v", err)
	}
	if len(followers) != 1 || followers[0] != alice.ID {
		t.Errorf("bob's followers = %v", followers)
	}

	if err := store.Delete(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if following, _ := store.IsFollowing(ctx, alice.ID, bob.ID); following {
		t.Error("unfollow did not remove the edge")
	}
}

func TestStore_SelfFollowRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	store := followstore.New(db)

	alice := fx.CreateUser(ctx, "alice", "alice@example.com")
	if _, err := store.Create(ctx, alice.ID, alice.ID); !errors.Is(err, followstore.ErrSelfFollow) {
		t.Errorf("err = %v, want ErrSelfFollow", err)
	}
}
