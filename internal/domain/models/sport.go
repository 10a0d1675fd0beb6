// internal/domain/models/sport.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sport types recognized by the platform. Stored as strings so documents stay
// readable and new types can be added without a migration.
const (
	SportBasketball  = "basketball"
	SportRunning     = "running"
	SportFootball    = "football"
	SportTennis      = "tennis"
	SportSoccer      = "soccer"
	SportVolleyball  = "volleyball"
	SportSwimming    = "swimming"
	SportCycling     = "cycling"
	SportYoga        = "yoga"
	SportGolf        = "golf"
	SportBaseball    = "baseball"
	SportBadminton   = "badminton"
	SportTableTennis = "table_tennis"
	SportClimbing    = "climbing"
	SportHiking      = "hiking"
	SportSkiing      = "skiing"
	SportSurfing     = "surfing"
	SportBoxing      = "boxing"
	SportMartialArts = "martial_arts"
	SportGym         = "gym"
	SportOther       = "other"
)

// SportTypes lists every recognized sport type, in catalog order.
var SportTypes = []string{
	SportBasketball, SportRunning, SportFootball, SportTennis, SportSoccer,
	SportVolleyball, SportSwimming, SportCycling, SportYoga, SportGolf,
	SportBaseball, SportBadminton, SportTableTennis, SportClimbing, SportHiking,
	SportSkiing, SportSurfing, SportBoxing, SportMartialArts, SportGym,
	SportOther,
}

// IsValidSportType reports whether s is a recognized sport type.
func IsValidSportType(s string) bool {
	for _, t := range SportTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Sport categories.
const (
	CategoryTeam       = "team"
	CategoryIndividual = "individual"
	CategoryWater      = "water"
	CategoryCombat     = "combat"
	CategoryRacquet    = "racquet"
	CategoryFitness    = "fitness"
	CategoryOutdoor    = "outdoor"
	CategoryIndoor     = "indoor"
	CategoryExtreme    = "extreme"
	CategoryWinter     = "winter"
	CategoryOtherKind  = "other"
)

// Sport is a catalog entry describing a sport type.
type Sport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type" json:"type"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IconURL     string             `bson:"icon_url,omitempty" json:"icon_url,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
