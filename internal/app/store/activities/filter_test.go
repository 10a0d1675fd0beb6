package activitystore_test

import (
	"testing"
	"time"

	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrT(v time.Time) *time.Time {
	return &v
}

func activity(mutate func(*models.SportActivity)) models.SportActivity {
	a := models.SportActivity{
		ID:        primitive.NewObjectID(),
		Name:      "pickup game",
		SportType: models.SportBasketball,
		IsActive:  true,
	}
	if mutate != nil {
		mutate(&a)
	}
	return a
}

func TestFilter_EmptyKeepsActiveOnly(t *testing.T) {
	in := []models.SportActivity{
		activity(nil),
		activity(func(a *models.SportActivity) { a.IsActive = false }),
	}

	out := activitystore.SearchFilter{}.Apply(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if !out[0].IsActive {
		t.Error("zero-value filter should keep only active activities")
	}
}

func TestFilter_ActiveStates(t *testing.T) {
	in := []models.SportActivity{
		activity(nil),
		activity(func(a *models.SportActivity) { a.IsActive = false }),
	}

	tests := []struct {
		name   string
		active activitystore.ActiveFilter
		want   int
	}{
		{"active only", activitystore.ActiveOnly, 1},
		{"inactive only", activitystore.InactiveOnly, 1},
		{"any", activitystore.ActiveAny, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := activitystore.SearchFilter{Active: tt.active}.Apply(in)
			if len(out) != tt.want {
				t.Errorf("got %d results, want %d", len(out), tt.want)
			}
		})
	}
}

func TestFilter_SportType(t *testing.T) {
	in := []models.SportActivity{
		activity(nil),
		activity(func(a *models.SportActivity) { a.SportType = models.SportTennis }),
	}

	out := activitystore.SearchFilter{SportType: models.SportTennis}.Apply(in)
	if len(out) != 1 || out[0].SportType != models.SportTennis {
		t.Fatalf("expected only the tennis activity, got %d results", len(out))
	}
}

func TestFilter_Location(t *testing.T) {
	// Centered on Ghent; one activity ~6 km away, one ~55 km away in Brussels,
	// one with no coordinates at all.
	near := activity(func(a *models.SportActivity) {
		a.Latitude, a.Longitude = ptrF(51.1043), ptrF(3.7174)
	})
	far := activity(func(a *models.SportActivity) {
		a.Latitude, a.Longitude = ptrF(50.8503), ptrF(4.3517)
	})
	nowhere := activity(nil)

	f := activitystore.SearchFilter{
		Location: &activitystore.LocationFilter{Latitude: 51.0543, Longitude: 3.7174, RadiusKm: 10},
	}
	out := f.Apply([]models.SportActivity{near, far, nowhere})

	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].ID != near.ID {
		t.Error("expected the nearby activity to pass the radius filter")
	}
}

func TestFilter_LocationBoundaryInclusive(t *testing.T) {
	center := activity(func(a *models.SportActivity) {
		a.Latitude, a.Longitude = ptrF(51.0543), ptrF(3.7174)
	})

	f := activitystore.SearchFilter{
		Location: &activitystore.LocationFilter{Latitude: 51.0543, Longitude: 3.7174, RadiusKm: 0},
	}
	out := f.Apply([]models.SportActivity{center})
	if len(out) != 1 {
		t.Error("distance equal to the radius should pass")
	}
}

func TestFilter_DateRange(t *testing.T) {
	base := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	early := activity(func(a *models.SportActivity) { a.ScheduledDate = ptrT(base.AddDate(0, 0, -7)) })
	inside := activity(func(a *models.SportActivity) { a.ScheduledDate = ptrT(base) })
	late := activity(func(a *models.SportActivity) { a.ScheduledDate = ptrT(base.AddDate(0, 0, 7)) })
	unscheduled := activity(nil)

	in := []models.SportActivity{early, inside, late, unscheduled}

	start := base.AddDate(0, 0, -1)
	end := base.AddDate(0, 0, 1)

	tests := []struct {
		name       string
		start, end *time.Time
		wantIDs    []primitive.ObjectID
	}{
		{"both bounds", &start, &end, []primitive.ObjectID{inside.ID}},
		{"start only", &start, nil, []primitive.ObjectID{inside.ID, late.ID}},
		{"end only", nil, &end, []primitive.ObjectID{early.ID, inside.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := activitystore.SearchFilter{Start: tt.start, End: tt.end}.Apply(in)
			if len(out) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(out), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if out[i].ID != want {
					t.Errorf("result %d: wrong activity", i)
				}
			}
		})
	}
}

func TestFilter_HasAvailableSlots(t *testing.T) {
	unlimited := activity(nil)
	open := activity(func(a *models.SportActivity) {
		a.MaxParticipants = ptrI(10)
		a.CurrentParticipants = 4
	})
	full := activity(func(a *models.SportActivity) {
		a.MaxParticipants = ptrI(4)
		a.CurrentParticipants = 4
	})

	out := activitystore.SearchFilter{HasAvailableSlots: true}.Apply(
		[]models.SportActivity{unlimited, open, full})

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	for _, a := range out {
		if a.ID == full.ID {
			t.Error("full activity should not pass the capacity filter")
		}
	}
}

func TestFilter_CriteriaCombineWithAND(t *testing.T) {
	match := activity(func(a *models.SportActivity) {
		a.SportType = models.SportRunning
		a.Latitude, a.Longitude = ptrF(51.0543), ptrF(3.7174)
	})
	wrongSport := activity(func(a *models.SportActivity) {
		a.Latitude, a.Longitude = ptrF(51.0543), ptrF(3.7174)
	})
	wrongPlace := activity(func(a *models.SportActivity) {
		a.SportType = models.SportRunning
		a.Latitude, a.Longitude = ptrF(48.8566), ptrF(2.3522)
	})

	f := activitystore.SearchFilter{
		SportType: models.SportRunning,
		Location:  &activitystore.LocationFilter{Latitude: 51.0543, Longitude: 3.7174, RadiusKm: 25},
	}
	out := f.Apply([]models.SportActivity{match, wrongSport, wrongPlace})
	if len(out) != 1 || out[0].ID != match.ID {
		t.Fatalf("expected only the match, got %d results", len(out))
	}
}

func TestFilter_CombinedEqualsSequentialComposition(t *testing.T) {
	// Cross-product candidate set: every combination of sport, coordinates,
	// schedule, capacity, and active flag.
	base := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	var in []models.SportActivity
	for _, sport := range []string{models.SportRunning, models.SportTennis} {
		for _, coords := range [][2]*float64{
			{ptrF(51.1043), ptrF(3.7174)}, // ~6 km from the filter center
			{ptrF(48.8566), ptrF(2.3522)}, // Paris, far outside
			{nil, nil},
		} {
			for _, date := range []*time.Time{ptrT(base), ptrT(base.AddDate(0, 1, 0)), nil} {
				for _, max := range []*int{nil, ptrI(4)} {
					for _, active := range []bool{true, false} {
						in = append(in, activity(func(a *models.SportActivity) {
							a.SportType = sport
							a.Latitude, a.Longitude = coords[0], coords[1]
							a.ScheduledDate = date
							a.MaxParticipants = max
							a.CurrentParticipants = 4
							a.IsActive = active
						}))
					}
				}
			}
		}
	}

	loc := &activitystore.LocationFilter{Latitude: 51.0543, Longitude: 3.7174, RadiusKm: 10}
	start := base.AddDate(0, 0, -1)
	end := base.AddDate(0, 0, 1)

	combined := activitystore.SearchFilter{
		SportType:         models.SportRunning,
		Location:          loc,
		Start:             &start,
		End:               &end,
		HasAvailableSlots: true,
	}

	// Each criterion alone, with the others disabled. ActiveAny keeps the
	// single-criterion steps from also applying the active default, so the
	// active criterion is its own step.
	steps := map[string]activitystore.SearchFilter{
		"sport":    {SportType: models.SportRunning, Active: activitystore.ActiveAny},
		"location": {Location: loc, Active: activitystore.ActiveAny},
		"dates":    {Start: &start, End: &end, Active: activitystore.ActiveAny},
		"capacity": {HasAvailableSlots: true, Active: activitystore.ActiveAny},
		"active":   {Active: activitystore.ActiveOnly},
	}
	orders := [][]string{
		{"sport", "location", "dates", "capacity", "active"},
		{"active", "capacity", "dates", "location", "sport"},
		{"dates", "active", "sport", "capacity", "location"},
	}

	want := combined.Apply(in)
	if len(want) == 0 {
		t.Fatal("combined filter matched nothing; candidate set is wrong")
	}

	for _, order := range orders {
		got := in
		for _, name := range order {
			got = steps[name].Apply(got)
		}
		if len(got) != len(want) {
			t.Fatalf("order %v: %d results, combined gave %d", order, len(got), len(want))
		}
		for i := range got {
			if got[i].ID != want[i].ID {
				t.Fatalf("order %v: result %d differs from combined filter", order, i)
			}
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	a1, a2, a3 := activity(nil), activity(nil), activity(nil)
	out := activitystore.SearchFilter{}.Apply([]models.SportActivity{a1, a2, a3})
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if out[0].ID != a1.ID || out[1].ID != a2.ID || out[2].ID != a3.ID {
		t.Error("filter should preserve input order")
	}
}
