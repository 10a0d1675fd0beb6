// internal/app/store/activities/filter.go
package activitystore

import (
	"time"

	"github.com/pitchside/pitchside/internal/app/system/geo"
	"github.com/pitchside/pitchside/internal/domain/models"
)

// ActiveFilter selects activities by their active state. The zero value is
// ActiveOnly, so a SearchFilter that never mentions activity state shows
// active activities — the default is part of the type, not a hidden branch.
type ActiveFilter int

const (
	// ActiveOnly keeps activities with is_active set.
	ActiveOnly ActiveFilter = iota
	// InactiveOnly keeps activities with is_active unset.
	InactiveOnly
	// ActiveAny keeps both.
	ActiveAny
)

// LocationFilter is a proximity criterion. All three fields are required
// together; a partial location criterion is rejected at the HTTP boundary.
type LocationFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// SearchFilter combines independently optional criteria. Every set criterion
// must pass for an activity to survive Apply.
type SearchFilter struct {
	SportType string
	Active    ActiveFilter
	Location  *LocationFilter

	// Date range over scheduled_date; either bound may be set alone.
	Start *time.Time
	End   *time.Time

	// HasAvailableSlots, when true, keeps only activities that can still
	// accept a participant. False means no capacity criterion.
	HasAvailableSlots bool
}

// Apply filters candidates, preserving order. It never errors: criteria that
// cannot be evaluated for an activity (no coordinates, no scheduled date)
// simply exclude it when that criterion is set.
func (f SearchFilter) Apply(in []models.SportActivity) []models.SportActivity {
	out := make([]models.SportActivity, 0, len(in))
	for _, a := range in {
		if f.matches(&a) {
			out = append(out, a)
		}
	}
	return out
}

func (f SearchFilter) matches(a *models.SportActivity) bool {
	if f.SportType != "" && a.SportType != f.SportType {
		return false
	}

	switch f.Active {
	case ActiveOnly:
		if !a.IsActive {
			return false
		}
	case InactiveOnly:
		if a.IsActive {
			return false
		}
	case ActiveAny:
	}

	if f.Location != nil {
		if a.Latitude == nil || a.Longitude == nil {
			return false
		}
		d := geo.DistanceKm(f.Location.Latitude, f.Location.Longitude, *a.Latitude, *a.Longitude)
		if d > f.Location.RadiusKm {
			return false
		}
	}

	if f.Start != nil || f.End != nil {
		if a.ScheduledDate == nil {
			return false
		}
		if f.Start != nil && a.ScheduledDate.Before(*f.Start) {
			return false
		}
		if f.End != nil && a.ScheduledDate.After(*f.End) {
			return false
		}
	}

	if f.HasAvailableSlots {
		if a.MaxParticipants != nil && a.CurrentParticipants >= *a.MaxParticipants {
			return false
		}
	}

	return true
}
