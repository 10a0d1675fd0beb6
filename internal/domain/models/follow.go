// internal/domain/models/follow.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is one edge of the social graph: follower -> following.
// Uniqueness of the (follower_id, following_id) pair is enforced by an index.
type Follow struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID  primitive.ObjectID `bson:"follower_id" json:"follower_id"`
	FollowingID primitive.ObjectID `bson:"following_id" json:"following_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
