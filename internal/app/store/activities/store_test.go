package activitystore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/domain/models"
	"github.com/pitchside/pitchside/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	a, err := store.Create(ctx, models.SportActivity{
		Name:      "Sunday Run",
		SportType: models.SportRunning,
		CreatedBy: creator,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if a.UniqueID == "" {
		t.Error("expected a unique id to be assigned")
	}
	if !a.IsActive {
		t.Error("new activities should be active")
	}
	if a.CurrentParticipants != 1 || len(a.Participants) != 1 || a.Participants[0] != creator {
		t.Errorf("creator should be the sole participant, got %v (count %d)", a.Participants, a.CurrentParticipants)
	}

	got, err := store.GetByUniqueID(ctx, a.UniqueID)
	if err != nil {
		t.Fatalf("GetByUniqueID failed: %v", err)
	}
	if got.ID != a.ID {
		t.Error("GetByUniqueID returned a different activity")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, activitystore.ErrNotFound) {
		t.Errorf("GetByID for missing = %v, want ErrNotFound", err)
	}
}

func TestStore_Join_AndLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	joiner := fx.CreateUser(ctx, "joiner", "joiner@example.com")
	max := 3
	act := fx.CreateActivity(ctx, creator.ID, "5v5", testutil.ActivityOpts{
		MaxParticipants: &max,
		Participants:    []primitive.ObjectID{creator.ID},
	})

	got, err := store.Join(ctx, act.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if got.CurrentParticipants != 2 || !got.HasParticipant(joiner.ID) {
		t.Errorf("after join: count=%d participants=%v", got.CurrentParticipants, got.Participants)
	}

	// Joining twice must fail without changing state.
	if _, err := store.Join(ctx, act.ID, joiner.ID); !errors.Is(err, activitystore.ErrAlreadyJoined) {
		t.Errorf("second Join = %v, want ErrAlreadyJoined", err)
	}

	got, err = store.Leave(ctx, act.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if got.CurrentParticipants != 1 || got.HasParticipant(joiner.ID) {
		t.Errorf("after leave: count=%d participants=%v", got.CurrentParticipants, got.Participants)
	}

	if _, err := store.Leave(ctx, act.ID, joiner.ID); !errors.Is(err, activitystore.ErrNotAMember) {
		t.Errorf("second Leave = %v, want ErrNotAMember", err)
	}
}

func TestStore_Join_MissingActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Join(ctx, primitive.NewObjectID(), primitive.NewObjectID()); !errors.Is(err, activitystore.ErrNotFound) {
		t.Errorf("Join on missing activity = %v, want ErrNotFound", err)
	}
	if _, err := store.Leave(ctx, primitive.NewObjectID(), primitive.NewObjectID()); !errors.Is(err, activitystore.ErrNotFound) {
		t.Errorf("Leave on missing activity = %v, want ErrNotFound", err)
	}
}

func TestStore_Join_Full(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	max := 1
	act := fx.CreateActivity(ctx, creator.ID, "singles", testutil.ActivityOpts{
		SportType:       models.SportTennis,
		MaxParticipants: &max,
		Participants:    []primitive.ObjectID{creator.ID},
	})

	if _, err := store.Join(ctx, act.ID, primitive.NewObjectID()); !errors.Is(err, activitystore.ErrActivityFull) {
		t.Errorf("Join on full activity = %v, want ErrActivityFull", err)
	}
}

// TestStore_Join_LastSlotRace drives many concurrent joins at a single open
// slot; exactly one may win, and the stored counter must agree with the
// participant array afterwards.
func TestStore_Join_LastSlotRace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	max := 2
	act := fx.CreateActivity(ctx, creator.ID, "last slot", testutil.ActivityOpts{
		MaxParticipants: &max,
		Participants:    []primitive.ObjectID{creator.ID},
	})

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Join(ctx, act.ID, primitive.NewObjectID())
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, activitystore.ErrActivityFull) {
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly 1 winner for the last slot, got %d", wins)
	}

	got, err := store.GetByID(ctx, act.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentParticipants != len(got.Participants) {
		t.Errorf("counter %d out of sync with participants %d", got.CurrentParticipants, len(got.Participants))
	}
	if got.CurrentParticipants != max {
		t.Errorf("expected activity at capacity %d, got %d", max, got.CurrentParticipants)
	}
}

// TestStore_CapacityScenario walks the join/leave lifecycle of a two-slot
// activity end to end.
func TestStore_CapacityScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	alice := fx.CreateUser(ctx, "alice", "alice@example.com")
	bob := fx.CreateUser(ctx, "bob", "bob@example.com")

	max := 2
	act := fx.CreateActivity(ctx, creator.ID, "doubles", testutil.ActivityOpts{
		MaxParticipants: &max,
		Participants:    []primitive.ObjectID{creator.ID},
	})

	// Alice takes the last slot.
	got, err := store.Join(ctx, act.ID, alice.ID)
	if err != nil {
		t.Fatalf("alice join failed: %v", err)
	}
	if slots := got.AvailableSlots(); slots == nil || *slots != 0 {
		t.Errorf("expected 0 available slots, got %v", slots)
	}

	// Bob bounces off the full activity.
	if _, err := store.Join(ctx, act.ID, bob.ID); !errors.Is(err, activitystore.ErrActivityFull) {
		t.Fatalf("bob join = %v, want ErrActivityFull", err)
	}

	// Alice leaves, freeing the slot; bob can now join.
	if _, err := store.Leave(ctx, act.ID, alice.ID); err != nil {
		t.Fatalf("alice leave failed: %v", err)
	}
	got, err = store.Join(ctx, act.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob rejoin failed: %v", err)
	}
	if !got.HasParticipant(bob.ID) || got.HasParticipant(alice.ID) {
		t.Errorf("final participants wrong: %v", got.Participants)
	}
	if got.CurrentParticipants != 2 {
		t.Errorf("final count = %d, want 2", got.CurrentParticipants)
	}
}

func TestStore_Search_SportTypeNarrowsQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	fx.CreateActivity(ctx, creator.ID, "hoops", testutil.ActivityOpts{SportType: models.SportBasketball})
	fx.CreateActivity(ctx, creator.ID, "laps", testutil.ActivityOpts{SportType: models.SportSwimming})
	fx.CreateActivity(ctx, creator.ID, "retired laps", testutil.ActivityOpts{
		SportType: models.SportSwimming,
		Inactive:  true,
	})

	out, err := store.Search(ctx, activitystore.SearchFilter{SportType: models.SportSwimming})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 active swimming activity, got %d", len(out))
	}
	if out[0].Name != "laps" {
		t.Errorf("wrong activity: %s", out[0].Name)
	}
}

func TestStore_Apply_Patch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activitystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	max := 10
	when := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	act := fx.CreateActivity(ctx, creator.ID, "morning ride", testutil.ActivityOpts{
		SportType:       models.SportCycling,
		MaxParticipants: &max,
		ScheduledDate:   &when,
	})

	got, err := store.Apply(ctx, act.ID, activitystore.Update{
		Description:     patch.Set("gravel loop, easy pace"),
		MaxParticipants: patch.Null[int](),
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got.Description != "gravel loop, easy pace" {
		t.Errorf("description not set: %q", got.Description)
	}
	if got.MaxParticipants != nil {
		t.Error("null patch should clear max_participants")
	}
	if got.ScheduledDate == nil || !got.ScheduledDate.Equal(when) {
		t.Error("absent patch field must leave scheduled_date untouched")
	}
	if got.CreatedBy != creator.ID {
		t.Error("created_by must survive updates")
	}
}
