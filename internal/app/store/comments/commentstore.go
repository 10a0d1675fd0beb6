// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no comment matches the lookup.
var ErrNotFound = errors.New("comment not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create inserts a new comment with sanitized body text. The caller maintains
// the post's comment counter.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()
	cm.Body = sanitize.Text(cm.Body)
	cm.Likes = []primitive.ObjectID{}
	cm.LikesCount = 0
	cm.IsActive = true

	now := time.Now().UTC()
	cm.CreatedAt = now
	cm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var cm models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}

// GetByPost returns a post's active comments, oldest first so threads read
// top to bottom.
func (s *Store) GetByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"post_id": postID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateBody replaces the comment body; only the author may edit.
func (s *Store) UpdateBody(ctx context.Context, id, userID primitive.ObjectID, body string) (*models.Comment, error) {
	update := bson.M{"$set": bson.M{
		"body":       sanitize.Text(body),
		"is_edited":  true,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cm models.Comment
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&cm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}

// Like adds userID to the like set and bumps the counter in one update.
func (s *Store) Like(ctx context.Context, id, userID primitive.ObjectID) (*models.Comment, error) {
	filter := bson.M{"_id": id, "likes": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"likes": userID},
		"$inc":      bson.M{"likes_count": 1},
	}
	if _, err := s.c.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Unlike removes userID from the like set; a no-op when not liked.
func (s *Store) Unlike(ctx context.Context, id, userID primitive.ObjectID) (*models.Comment, error) {
	filter := bson.M{"_id": id, "likes": userID}
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$inc":  bson.M{"likes_count": -1},
	}
	if _, err := s.c.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a comment; only the author may delete. The caller
// maintains the post's comment counter.
func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cm models.Comment
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
		opts).Decode(&cm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}
