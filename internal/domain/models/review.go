// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review types.
const (
	ReviewActivity = "activity" // review of an activity
	ReviewUser     = "user"     // review of an organizer/participant
)

// Review is a rating plus optional comment, either on an activity or a user.
type Review struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReviewType string              `bson:"review_type" json:"review_type"`
	ActivityID *primitive.ObjectID `bson:"activity_id,omitempty" json:"activity_id,omitempty"`
	ReviewerID primitive.ObjectID  `bson:"reviewer_id" json:"reviewer_id"`
	RevieweeID *primitive.ObjectID `bson:"reviewee_id,omitempty" json:"reviewee_id,omitempty"`

	Rating  int    `bson:"rating" json:"rating"` // 1..5
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"` // sanitized before storage

	// HelpfulVotes and HelpfulCount move together in a single update.
	HelpfulVotes []primitive.ObjectID `bson:"helpful_votes" json:"-"`
	HelpfulCount int                  `bson:"helpful_count" json:"helpful_count"`

	IsActive bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
