// internal/domain/models/settings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile visibility values.
const (
	ProfilePublic        = "public"
	ProfileFollowersOnly = "followers_only"
	ProfilePrivate       = "private"
)

// Theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Measurement units.
const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

// UserSettings holds per-user preferences. One document per user, created
// lazily with defaults on first read.
type UserSettings struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	// Notification channels
	EmailNotifications bool `bson:"email_notifications" json:"email_notifications"`
	PushNotifications  bool `bson:"push_notifications" json:"push_notifications"`

	// Per-event notification toggles, consulted by the notifier on fan-out.
	NotifyOnFollow           bool `bson:"notify_on_follow" json:"notify_on_follow"`
	NotifyOnLike             bool `bson:"notify_on_like" json:"notify_on_like"`
	NotifyOnComment          bool `bson:"notify_on_comment" json:"notify_on_comment"`
	NotifyOnInvite           bool `bson:"notify_on_invite" json:"notify_on_invite"`
	NotifyOnMessage          bool `bson:"notify_on_message" json:"notify_on_message"`
	NotifyOnActivityReminder bool `bson:"notify_on_activity_reminder" json:"notify_on_activity_reminder"`

	// Privacy
	ProfileVisibility string `bson:"profile_visibility" json:"profile_visibility"`
	ShowLocation      bool   `bson:"show_location" json:"show_location"`
	ShowEmail         bool   `bson:"show_email" json:"show_email"`
	ShowPhoneNumber   bool   `bson:"show_phone_number" json:"show_phone_number"`

	// Matching preferences
	PreferredSports []string `bson:"preferred_sports,omitempty" json:"preferred_sports,omitempty"`
	MaxDistanceKm   *float64 `bson:"max_distance_km,omitempty" json:"max_distance_km,omitempty"`

	Language        string `bson:"language" json:"language"`
	Theme           string `bson:"theme" json:"theme"`
	MeasurementUnit string `bson:"measurement_unit" json:"measurement_unit"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the settings document created for a new user.
func DefaultSettings(userID primitive.ObjectID) UserSettings {
	now := time.Now().UTC()
	return UserSettings{
		UserID:                   userID,
		EmailNotifications:       true,
		PushNotifications:        true,
		NotifyOnFollow:           true,
		NotifyOnLike:             true,
		NotifyOnComment:          true,
		NotifyOnInvite:           true,
		NotifyOnMessage:          true,
		NotifyOnActivityReminder: true,
		ProfileVisibility:        ProfilePublic,
		ShowLocation:             true,
		Language:                 "en",
		Theme:                    ThemeSystem,
		MeasurementUnit:          UnitMetric,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}
