// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a reply on a post. A non-nil ParentCommentID makes it a threaded
// reply to another comment on the same post.
type Comment struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID          primitive.ObjectID  `bson:"post_id" json:"post_id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	ParentCommentID *primitive.ObjectID `bson:"parent_comment_id,omitempty" json:"parent_comment_id,omitempty"`

	Body string `bson:"body" json:"body"` // sanitized before storage

	Likes      []primitive.ObjectID `bson:"likes" json:"-"`
	LikesCount int                  `bson:"likes_count" json:"likes_count"`

	IsActive bool `bson:"is_active" json:"is_active"`
	IsEdited bool `bson:"is_edited" json:"is_edited"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
