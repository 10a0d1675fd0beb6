// internal/app/store/sports/sportstore.go
package sportstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/normalize"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no sport matches the lookup.
var ErrNotFound = errors.New("sport not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sports")}
}

// catalog maps each sport type to its display name and category.
var catalog = map[string]struct {
	name     string
	category string
}{
	models.SportBasketball:  {"Basketball", models.CategoryTeam},
	models.SportRunning:     {"Running", models.CategoryIndividual},
	models.SportFootball:    {"Football", models.CategoryTeam},
	models.SportTennis:      {"Tennis", models.CategoryRacquet},
	models.SportSoccer:      {"Soccer", models.CategoryTeam},
	models.SportVolleyball:  {"Volleyball", models.CategoryTeam},
	models.SportSwimming:    {"Swimming", models.CategoryWater},
	models.SportCycling:     {"Cycling", models.CategoryIndividual},
	models.SportYoga:        {"Yoga", models.CategoryFitness},
	models.SportGolf:        {"Golf", models.CategoryIndividual},
	models.SportBaseball:    {"Baseball", models.CategoryTeam},
	models.SportBadminton:   {"Badminton", models.CategoryRacquet},
	models.SportTableTennis: {"Table Tennis", models.CategoryRacquet},
	models.SportClimbing:    {"Climbing", models.CategoryOutdoor},
	models.SportHiking:      {"Hiking", models.CategoryOutdoor},
	models.SportSkiing:      {"Skiing", models.CategoryWinter},
	models.SportSurfing:     {"Surfing", models.CategoryWater},
	models.SportBoxing:      {"Boxing", models.CategoryCombat},
	models.SportMartialArts: {"Martial Arts", models.CategoryCombat},
	models.SportGym:         {"Gym", models.CategoryFitness},
	models.SportOther:       {"Other", models.CategoryOtherKind},
}

// SeedDefaults inserts the built-in sport catalog when the collection is
// empty. It returns the number of sports inserted, zero when the catalog was
// already seeded. Safe to run on every startup.
func (s *Store) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(models.SportTypes))
	for _, typ := range models.SportTypes {
		entry := catalog[typ]
		docs = append(docs, models.Sport{
			ID:        primitive.NewObjectID(),
			Name:      entry.name,
			Type:      typ,
			Category:  entry.category,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	res, err := s.c.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// List returns active sports in name order.
func (s *Store) List(ctx context.Context) ([]models.Sport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sports []models.Sport
	if err := cur.All(ctx, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// GetByType looks up a sport by its type key.
func (s *Store) GetByType(ctx context.Context, sportType string) (*models.Sport, error) {
	var sp models.Sport
	if err := s.c.FindOne(ctx, bson.M{"type": normalize.SportType(sportType)}).Decode(&sp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}
