// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values stored on a user profile.
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"
)

// Skill levels a user can self-report.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
	SkillExpert       = "expert"
)

// User represents a platform account.
//
// NOTE:
//   - Activity membership is not embedded on User; the participants array on
//     sport_activities is the source of truth.
//   - The social graph lives in the follows collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	Name      string `bson:"name" json:"name"`
	FirstName string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"last_name,omitempty"`

	Bio          string     `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage string     `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	PhoneNumber  string     `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	DateOfBirth  *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Gender       string     `bson:"gender,omitempty" json:"gender,omitempty"`

	// Home location; both coordinates are present or both absent.
	Location  string   `bson:"location,omitempty" json:"location,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	PreferredSport string `bson:"preferred_sport,omitempty" json:"preferred_sport,omitempty"`
	SkillLevel     string `bson:"skill_level,omitempty" json:"skill_level,omitempty"`

	IsActive    bool       `bson:"is_active" json:"is_active"`
	IsVerified  bool       `bson:"is_verified" json:"is_verified"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
