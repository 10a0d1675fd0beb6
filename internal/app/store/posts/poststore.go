// internal/app/store/posts/poststore.go
package poststore

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

// ErrNotFound is returned when no post matches the lookup.
var ErrNotFound = errors.New("post not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Create inserts a new post with sanitized body text.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	p.Body = sanitize.Text(p.Body)
	if p.PostType == "" {
		p.PostType = models.PostText
	}
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPublic
	}
	p.Likes = []primitive.ObjectID{}
	p.LikesCount = 0
	p.CommentsCount = 0
	p.IsActive = true

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns active posts, newest first.
func (s *Store) List(ctx context.Context, limit, offset int64) ([]models.Post, error) {
	return s.find(ctx, bson.M{"is_active": true}, limit, offset)
}

// GetByUser returns a user's active posts, newest first.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"user_id": userID, "is_active": true}, 0, 0)
}

// GetByActivity returns posts attached to an activity, newest first.
func (s *Store) GetByActivity(ctx context.Context, activityID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"activity_id": activityID, "is_active": true}, 0, 0)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit, offset int64) ([]models.Post, error) {
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

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update describes a partial update to a post.
type Update struct {
	Title      patch.Field[string]
	Body       patch.Field[string]
	MediaURLs  patch.Field[[]string]
	Visibility patch.Field[string]
	IsPinned   patch.Field[bool]
	Tags       patch.Field[[]string]
}

// Apply performs the partial update; only the author may edit, so the filter
// includes user_id. Returns ErrNotFound when no document matched.
func (s *Store) Apply(ctx context.Context, id, userID primitive.ObjectID, upd Update) (*models.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if upd.Title.Present() {
		if upd.Title.IsNull() {
			unset["title"] = ""
		} else {
			v, _ := upd.Title.Value()
			set["title"] = sanitize.Text(v)
		}
	}
	if v, ok := upd.Body.Value(); ok {
		set["body"] = sanitize.Text(v)
	}
	if upd.MediaURLs.Present() {
		if upd.MediaURLs.IsNull() {
			unset["media_urls"] = ""
		} else {
			v, _ := upd.MediaURLs.Value()
			set["media_urls"] = v
		}
	}
	if v, ok := upd.Visibility.Value(); ok {
		set["visibility"] = v
	}
	if v, ok := upd.IsPinned.Value(); ok {
		set["is_pinned"] = v
	}
	if upd.Tags.Present() {
		if upd.Tags.IsNull() {
			unset["tags"] = ""
		} else {
			v, _ := upd.Tags.Value()
			set["tags"] = v
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Post
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Like adds userID to the like set and bumps the counter in one update.
// Liking twice is a no-op.
func (s *Store) Like(ctx context.Context, id, userID primitive.ObjectID) (*models.Post, error) {
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
func (s *Store) Unlike(ctx context.Context, id, userID primitive.ObjectID) (*models.Post, error) {
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

// IncrementComments adjusts the denormalized comment counter.
func (s *Store) IncrementComments(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}

// Delete soft-deletes a post; only the author may delete.
func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
