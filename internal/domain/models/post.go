// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types.
const (
	PostText     = "text"
	PostImage    = "image"
	PostVideo    = "video"
	PostActivity = "activity" // share of a sport activity
)

// Post visibility.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// Post is user-authored feed content, optionally attached to an activity.
type Post struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ActivityID *primitive.ObjectID `bson:"activity_id,omitempty" json:"activity_id,omitempty"`

	Title    string `bson:"title,omitempty" json:"title,omitempty"`
	Body     string `bson:"body" json:"body"` // sanitized before storage
	PostType string `bson:"post_type" json:"post_type"`

	MediaURLs    []string `bson:"media_urls,omitempty" json:"media_urls,omitempty"`
	ThumbnailURL string   `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`

	// Likes and LikesCount move together in a single update.
	Likes         []primitive.ObjectID `bson:"likes" json:"-"`
	LikesCount    int                  `bson:"likes_count" json:"likes_count"`
	CommentsCount int                  `bson:"comments_count" json:"comments_count"`

	Visibility string   `bson:"visibility" json:"visibility"`
	IsActive   bool     `bson:"is_active" json:"is_active"`
	IsPinned   bool     `bson:"is_pinned" json:"is_pinned"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
