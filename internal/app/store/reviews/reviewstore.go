// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no review matches the lookup.
	ErrNotFound = errors.New("review not found")
	// ErrBadRating is returned for ratings outside 1..5.
	ErrBadRating = errors.New("rating must be between 1 and 5")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// Create inserts a review after validating the rating.
func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return models.Review{}, ErrBadRating
	}

	r.ID = primitive.NewObjectID()
	r.Comment = sanitize.Text(r.Comment)
	r.HelpfulVotes = []primitive.ObjectID{}
	r.HelpfulCount = 0
	r.IsActive = true

	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

// GetByID loads a review by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var r models.Review
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// GetByActivity returns active reviews of an activity, newest first.
func (s *Store) GetByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.Review, error) {
	return s.find(ctx, bson.M{"activity_id": activityID, "is_active": true})
}

// GetByReviewee returns active reviews of a user, newest first.
func (s *Store) GetByReviewee(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error) {
	return s.find(ctx, bson.M{"reviewee_id": userID, "is_active": true})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update describes a partial update to a review.
type Update struct {
	Rating  patch.Field[int]
	Title   patch.Field[string]
	Comment patch.Field[string]
}

// Apply performs the partial update; only the reviewer may edit.
func (s *Store) Apply(ctx context.Context, id, reviewerID primitive.ObjectID, upd Update) (*models.Review, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if v, ok := upd.Rating.Value(); ok {
		if v < 1 || v > 5 {
			return nil, ErrBadRating
		}
		set["rating"] = v
	}
	if upd.Title.Present() {
		if upd.Title.IsNull() {
			unset["title"] = ""
		} else {
			v, _ := upd.Title.Value()
			set["title"] = sanitize.Text(v)
		}
	}
	if upd.Comment.Present() {
		if upd.Comment.IsNull() {
			unset["comment"] = ""
		} else {
			v, _ := upd.Comment.Value()
			set["comment"] = sanitize.Text(v)
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.Review
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "reviewer_id": reviewerID}, update, opts).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// MarkHelpful adds a helpful vote; voting twice is a no-op.
func (s *Store) MarkHelpful(ctx context.Context, id, userID primitive.ObjectID) (*models.Review, error) {
	filter := bson.M{"_id": id, "helpful_votes": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"helpful_votes": userID},
		"$inc":      bson.M{"helpful_count": 1},
	}
	if _, err := s.c.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a review; only the reviewer may delete.
func (s *Store) Delete(ctx context.Context, id, reviewerID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "reviewer_id": reviewerID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
