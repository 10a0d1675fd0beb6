// internal/app/store/follows/followstore.go
package followstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when the follow edge does not exist.
	ErrNotFound = errors.New("follow not found")
	// ErrDuplicateFollow is returned when the edge already exists.
	ErrDuplicateFollow = errors.New("already following this user")
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("follows")}
}

// Create adds a follower -> following edge. Duplicate edges are rejected by
// the unique index.
func (s *Store) Create(ctx context.Context, followerID, followingID primitive.ObjectID) (models.Follow, error) {
	if followerID == followingID {
		return models.Follow{}, ErrSelfFollow
	}

	f := models.Follow{
		ID:          primitive.NewObjectID(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Follow{}, ErrDuplicateFollow
		}
		return models.Follow{}, err
	}
	return f, nil
}

// Delete removes the follower -> following edge.
func (s *Store) Delete(ctx context.Context, followerID, followingID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"follower_id": followerID, "following_id": followingID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether the edge exists.
func (s *Store) IsFollowing(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"follower_id": followerID, "following_id": followingID}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Followers returns the user ids following userID, newest edge first.
func (s *Store) Followers(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.edgeIDs(ctx, bson.M{"following_id": userID}, "follower_id")
}

// Following returns the user ids userID follows, newest edge first.
func (s *Store) Following(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.edgeIDs(ctx, bson.M{"follower_id": userID}, "following_id")
}

func (s *Store) edgeIDs(ctx context.Context, filter bson.M, field string) ([]primitive.ObjectID, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var edges []models.Follow
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		if field == "follower_id" {
			ids = append(ids, e.FollowerID)
		} else {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

// Counts returns follower and following counts for a user.
func (s *Store) Counts(ctx context.Context, userID primitive.ObjectID) (followers, following int64, err error) {
	followers, err = s.c.CountDocuments(ctx, bson.M{"following_id": userID})
	if err != nil {
		return 0, 0, err
	}
	following, err = s.c.CountDocuments(ctx, bson.M{"follower_id": userID})
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
