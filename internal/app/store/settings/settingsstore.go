// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_settings")}
}

// Get returns the user's settings, creating the default document on first
// read. A concurrent first read loses the insert race against the unique
// user_id index and re-reads instead.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (*models.UserSettings, error) {
	var st models.UserSettings
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&st)
	if err == nil {
		return &st, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	def := models.DefaultSettings(userID)
	def.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, def); err != nil {
		if wafflemongo.IsDup(err) {
			if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&st); err != nil {
				return nil, err
			}
			return &st, nil
		}
		return nil, err
	}
	return &def, nil
}

// Update describes a partial update to user settings.
type Update struct {
	EmailNotifications       patch.Field[bool]
	PushNotifications        patch.Field[bool]
	NotifyOnFollow           patch.Field[bool]
	NotifyOnLike             patch.Field[bool]
	NotifyOnComment          patch.Field[bool]
	NotifyOnInvite           patch.Field[bool]
	NotifyOnMessage          patch.Field[bool]
	NotifyOnActivityReminder patch.Field[bool]
	ProfileVisibility        patch.Field[string]
	ShowLocation             patch.Field[bool]
	ShowEmail                patch.Field[bool]
	ShowPhoneNumber          patch.Field[bool]
	PreferredSports          patch.Field[[]string]
	MaxDistanceKm            patch.Field[float64]
	Language                 patch.Field[string]
	Theme                    patch.Field[string]
	MeasurementUnit          patch.Field[string]
}

// Apply performs the partial update, creating the settings document first
// when it does not exist yet.
func (s *Store) Apply(ctx context.Context, userID primitive.ObjectID, upd Update) (*models.UserSettings, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	setBool := func(field string, f patch.Field[bool]) {
		if v, ok := f.Value(); ok {
			set[field] = v
		}
	}
	setBool("email_notifications", upd.EmailNotifications)
	setBool("push_notifications", upd.PushNotifications)
	setBool("notify_on_follow", upd.NotifyOnFollow)
	setBool("notify_on_like", upd.NotifyOnLike)
	setBool("notify_on_comment", upd.NotifyOnComment)
	setBool("notify_on_invite", upd.NotifyOnInvite)
	setBool("notify_on_message", upd.NotifyOnMessage)
	setBool("notify_on_activity_reminder", upd.NotifyOnActivityReminder)
	setBool("show_location", upd.ShowLocation)
	setBool("show_email", upd.ShowEmail)
	setBool("show_phone_number", upd.ShowPhoneNumber)

	if v, ok := upd.ProfileVisibility.Value(); ok {
		set["profile_visibility"] = v
	}
	if v, ok := upd.Language.Value(); ok {
		set["language"] = v
	}
	if v, ok := upd.Theme.Value(); ok {
		set["theme"] = v
	}
	if v, ok := upd.MeasurementUnit.Value(); ok {
		set["measurement_unit"] = v
	}
	if upd.PreferredSports.Present() {
		if upd.PreferredSports.IsNull() {
			unset["preferred_sports"] = ""
		} else {
			v, _ := upd.PreferredSports.Value()
			set["preferred_sports"] = v
		}
	}
	if upd.MaxDistanceKm.Present() {
		if upd.MaxDistanceKm.IsNull() {
			unset["max_distance_km"] = ""
		} else {
			v, _ := upd.MaxDistanceKm.Value()
			set["max_distance_km"] = v
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var st models.UserSettings
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}
