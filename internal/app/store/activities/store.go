// internal/app/store/activities/store.go
package activitystore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pitchside/pitchside/internal/app/system/normalize"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sport_activities")}
}

// Create inserts a new activity. The creator is always the first participant
// and the participant counter starts at 1.
func (s *Store) Create(ctx context.Context, a models.SportActivity) (models.SportActivity, error) {
	a.ID = primitive.NewObjectID()
	a.UniqueID = uuid.NewString()
	a.Name = normalize.Name(a.Name)
	a.NameCI = text.Fold(a.Name)
	a.Description = sanitize.Text(a.Description)
	a.SportType = normalize.SportType(a.SportType)

	a.Participants = []primitive.ObjectID{a.CreatedBy}
	a.CurrentParticipants = 1
	if a.Status == "" {
		a.Status = models.ActivityPublished
	}
	a.IsActive = true

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.SportActivity{}, err
	}
	return a, nil
}

// GetByID loads an activity by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SportActivity, error) {
	var a models.SportActivity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByUniqueID loads an activity by its shareable unique id.
func (s *Store) GetByUniqueID(ctx context.Context, uniqueID string) (*models.SportActivity, error) {
	var a models.SportActivity
	if err := s.c.FindOne(ctx, bson.M{"unique_id": uniqueID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns activities newest first.
func (s *Store) List(ctx context.Context, limit, offset int64) ([]models.SportActivity, error) {
	return s.find(ctx, bson.M{}, limit, offset)
}

// GetByUser returns activities created by the given user.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]models.SportActivity, error) {
	return s.find(ctx, bson.M{"created_by": userID}, 0, 0)
}

// GetBySportType returns activities of one sport type.
func (s *Store) GetBySportType(ctx context.Context, sportType string) ([]models.SportActivity, error) {
	return s.find(ctx, bson.M{"sport_type": normalize.SportType(sportType)}, 0, 0)
}

// GetActive returns activities with is_active set.
func (s *Store) GetActive(ctx context.Context) ([]models.SportActivity, error) {
	return s.find(ctx, bson.M{"is_active": true}, 0, 0)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit, offset int64) ([]models.SportActivity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var acts []models.SportActivity
	if err := cur.All(ctx, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Search loads the candidate set for a filter and applies it in memory.
// A sport-type criterion narrows the base query; everything else is applied
// by the filter itself.
func (s *Store) Search(ctx context.Context, f SearchFilter) ([]models.SportActivity, error) {
	base := bson.M{}
	if f.SportType != "" {
		base["sport_type"] = normalize.SportType(f.SportType)
	}
	candidates, err := s.find(ctx, base, 0, 0)
	if err != nil {
		return nil, err
	}
	return f.Apply(candidates), nil
}

// Update describes a partial update to an activity. Absent fields are
// untouched; null fields are cleared where the model allows it.
type Update struct {
	Name               patch.Field[string]
	Description        patch.Field[string]
	Location           patch.Field[string]
	Address            patch.Field[string]
	City               patch.Field[string]
	Country            patch.Field[string]
	Latitude           patch.Field[float64]
	Longitude          patch.Field[float64]
	RadiusKm           patch.Field[float64]
	ScheduledDate      patch.Field[time.Time]
	StartTime          patch.Field[time.Time]
	EndTime            patch.Field[time.Time]
	DurationMinutes    patch.Field[int]
	MaxParticipants    patch.Field[int]
	SkillLevelRequired patch.Field[string]
	CostPerPerson      patch.Field[float64]
	EquipmentProvided  patch.Field[bool]
	EquipmentNeeded    patch.Field[string]
	Status             patch.Field[string]
	IsActive           patch.Field[bool]
	IsPublic           patch.Field[bool]
	Tags               patch.Field[[]string]
}

// Apply performs the partial update and returns the updated document.
// created_by, unique_id and the participant set are never touched here.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.SportActivity, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	put := func(field string, f interface {
		Present() bool
		IsNull() bool
	}, value func() any) {
		if !f.Present() {
			return
		}
		if f.IsNull() {
			unset[field] = ""
			return
		}
		set[field] = value()
	}

	if upd.Name.Present() && !upd.Name.IsNull() {
		v, _ := upd.Name.Value()
		v = normalize.Name(v)
		set["name"] = v
		set["name_ci"] = text.Fold(v)
	}
	put("description", upd.Description, func() any { v, _ := upd.Description.Value(); return sanitize.Text(v) })
	put("location", upd.Location, func() any { v, _ := upd.Location.Value(); return v })
	put("address", upd.Address, func() any { v, _ := upd.Address.Value(); return v })
	put("city", upd.City, func() any { v, _ := upd.City.Value(); return v })
	put("country", upd.Country, func() any { v, _ := upd.Country.Value(); return v })
	put("latitude", upd.Latitude, func() any { v, _ := upd.Latitude.Value(); return v })
	put("longitude", upd.Longitude, func() any { v, _ := upd.Longitude.Value(); return v })
	put("radius_km", upd.RadiusKm, func() any { v, _ := upd.RadiusKm.Value(); return v })
	put("scheduled_date", upd.ScheduledDate, func() any { v, _ := upd.ScheduledDate.Value(); return v })
	put("start_time", upd.StartTime, func() any { v, _ := upd.StartTime.Value(); return v })
	put("end_time", upd.EndTime, func() any { v, _ := upd.EndTime.Value(); return v })
	put("duration_minutes", upd.DurationMinutes, func() any { v, _ := upd.DurationMinutes.Value(); return v })
	put("max_participants", upd.MaxParticipants, func() any { v, _ := upd.MaxParticipants.Value(); return v })
	put("skill_level_required", upd.SkillLevelRequired, func() any { v, _ := upd.SkillLevelRequired.Value(); return v })
	put("cost_per_person", upd.CostPerPerson, func() any { v, _ := upd.CostPerPerson.Value(); return v })
	put("equipment_provided", upd.EquipmentProvided, func() any { v, _ := upd.EquipmentProvided.Value(); return v })
	put("equipment_needed", upd.EquipmentNeeded, func() any { v, _ := upd.EquipmentNeeded.Value(); return v })
	put("status", upd.Status, func() any { v, _ := upd.Status.Value(); return v })
	put("is_active", upd.IsActive, func() any { v, _ := upd.IsActive.Value(); return v })
	put("is_public", upd.IsPublic, func() any { v, _ := upd.IsPublic.Value(); return v })
	put("tags", upd.Tags, func() any { v, _ := upd.Tags.Value(); return v })

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.SportActivity
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// IncrementViews bumps the view counter. Misses are ignored.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// Delete removes an activity. Returns ErrNotFound when nothing matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
