package sportstore_test

import (
	"testing"

	sportstore "github.com/pitchside/pitchside/internal/app/store/sports"
	"github.com/pitchside/pitchside/internal/domain/models"
	"github.com/pitchside/pitchside/internal/testutil"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := sportstore.New(db)

	seeded, err := store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if seeded != len(models.SportTypes) {
		t.Errorf("seeded %d sports, want %d", seeded, len(models.SportTypes))
	}

	again, err := store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again != 0 {
		t.Errorf("re-seed inserted %d sports, want 0", again)
	}

	sports, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sports) != len(models.SportTypes) {
		t.Errorf("catalog has %d sports, want %d", len(sports), len(models.SportTypes))
	}
}

func TestGetByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := sportstore.New(db)
	if _, err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, err := store.GetByType(ctx, models.SportFootball)
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if s.Type != models.SportFootball {
		t.Errorf("type = %q", s.Type)
	}

	if _, err := store.GetByType(ctx, "quidditch"); err != sportstore.ErrNotFound {
		t.Errorf("unknown sport err = %v, want ErrNotFound", err)
	}
}
