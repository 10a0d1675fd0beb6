// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity lifecycle states.
const (
	ActivityDraft      = "draft"
	ActivityPublished  = "published"
	ActivityInProgress = "in_progress"
	ActivityCompleted  = "completed"
	ActivityCancelled  = "cancelled"
)

// Skill level an activity may require of joiners.
const (
	ActivitySkillAny          = "any"
	ActivitySkillBeginner     = "beginner"
	ActivitySkillIntermediate = "intermediate"
	ActivitySkillAdvanced     = "advanced"
)

// SportActivity is a scheduled sport event with capacity and location.
//
// Invariants maintained by the activities store:
//   - CurrentParticipants always equals len(Participants).
//   - A user id appears in Participants at most once.
//   - CurrentParticipants never exceeds MaxParticipants when the latter is set;
//     the join update enforces this at the database, not just in a pre-check.
type SportActivity struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UniqueID string             `bson:"unique_id" json:"unique_id"` // externally shareable, assigned at creation

	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	SportType string `bson:"sport_type" json:"sport_type"`
	Category  string `bson:"category,omitempty" json:"category,omitempty"`

	// Location. Latitude and Longitude are both present or both absent.
	Location  string   `bson:"location,omitempty" json:"location,omitempty"`
	Address   string   `bson:"address,omitempty" json:"address,omitempty"`
	City      string   `bson:"city,omitempty" json:"city,omitempty"`
	Country   string   `bson:"country,omitempty" json:"country,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	RadiusKm  *float64 `bson:"radius_km,omitempty" json:"radius_km,omitempty"`

	// Scheduling
	ScheduledDate   *time.Time `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	StartTime       *time.Time `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime         *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	DurationMinutes *int       `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`

	// Participants. MaxParticipants nil means unlimited.
	MaxParticipants     *int                 `bson:"max_participants,omitempty" json:"max_participants,omitempty"`
	MinParticipants     int                  `bson:"min_participants" json:"min_participants"`
	CurrentParticipants int                  `bson:"current_participants" json:"current_participants"`
	Participants        []primitive.ObjectID `bson:"participants" json:"participants"`

	SkillLevelRequired string  `bson:"skill_level_required,omitempty" json:"skill_level_required,omitempty"`
	AgeRestriction     string  `bson:"age_restriction,omitempty" json:"age_restriction,omitempty"`
	CostPerPerson      float64 `bson:"cost_per_person" json:"cost_per_person"`
	Currency           string  `bson:"currency" json:"currency"`
	EquipmentProvided  bool    `bson:"equipment_provided" json:"equipment_provided"`
	EquipmentNeeded    string  `bson:"equipment_needed,omitempty" json:"equipment_needed,omitempty"`

	Status   string `bson:"status" json:"status"`
	IsActive bool   `bson:"is_active" json:"is_active"`
	IsPublic bool   `bson:"is_public" json:"is_public"`

	// CreatedBy is immutable after creation.
	CreatedBy   primitive.ObjectID  `bson:"created_by" json:"created_by"`
	OrganizerID *primitive.ObjectID `bson:"organizer_id,omitempty" json:"organizer_id,omitempty"`

	Views     int      `bson:"views" json:"views"`
	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`
	ImageURLs []string `bson:"image_urls,omitempty" json:"image_urls,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID is in the participant set.
func (a *SportActivity) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range a.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the activity has reached its configured capacity.
// An activity without a maximum is never full.
func (a *SportActivity) IsFull() bool {
	return a.MaxParticipants != nil && a.CurrentParticipants >= *a.MaxParticipants
}

// AvailableSlots returns the remaining capacity, or nil when unlimited.
func (a *SportActivity) AvailableSlots() *int {
	if a.MaxParticipants == nil {
		return nil
	}
	n := *a.MaxParticipants - a.CurrentParticipants
	if n < 0 {
		n = 0
	}
	return &n
}
