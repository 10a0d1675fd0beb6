// internal/domain/models/conversation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation types.
const (
	ConversationDirect   = "direct"
	ConversationGroup    = "group"
	ConversationActivity = "activity" // chat attached to a sport activity
)

// Conversation groups messages between a fixed set of participants.
type Conversation struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Type         string               `bson:"conversation_type" json:"conversation_type"`
	ActivityID   *primitive.ObjectID  `bson:"activity_id,omitempty" json:"activity_id,omitempty"`

	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`

	// Denormalized last-message pointers, maintained by the messages store.
	LastMessageID *primitive.ObjectID `bson:"last_message_id,omitempty" json:"last_message_id,omitempty"`
	LastMessageAt *time.Time          `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
