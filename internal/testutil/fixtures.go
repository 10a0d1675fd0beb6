// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a minimal active user and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        email,
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixture",
		Name:         username,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// ActivityOpts tweaks CreateActivity. Zero value gives an open, active,
// unlimited basketball activity.
type ActivityOpts struct {
	SportType       string
	MaxParticipants *int
	Participants    []primitive.ObjectID
	Latitude        *float64
	Longitude       *float64
	ScheduledDate   *time.Time
	Inactive        bool
}

// CreateActivity inserts an activity owned by creator and returns it.
func (f *Fixtures) CreateActivity(ctx context.Context, creator primitive.ObjectID, name string, opts ActivityOpts) models.SportActivity {
	f.t.Helper()

	sport := opts.SportType
	if sport == "" {
		sport = models.SportBasketball
	}
	participants := opts.Participants
	if participants == nil {
		participants = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	a := models.SportActivity{
		ID:                  primitive.NewObjectID(),
		UniqueID:            uuid.NewString(),
		Name:                name,
		NameCI:              text.Fold(name),
		SportType:           sport,
		MaxParticipants:     opts.MaxParticipants,
		MinParticipants:     1,
		CurrentParticipants: len(participants),
		Participants:        participants,
		Latitude:            opts.Latitude,
		Longitude:           opts.Longitude,
		ScheduledDate:       opts.ScheduledDate,
		Status:              models.ActivityPublished,
		IsActive:            !opts.Inactive,
		IsPublic:            true,
		Currency:            "EUR",
		CreatedBy:           creator,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if _, err := f.db.Collection("sport_activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreatePost inserts a post authored by userID and returns it.
func (f *Fixtures) CreatePost(ctx context.Context, userID primitive.ObjectID, body string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Post{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Body:       body,
		PostType:   models.PostText,
		Likes:      []primitive.ObjectID{},
		Visibility: models.VisibilityPublic,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
