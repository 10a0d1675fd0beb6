// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types.
const (
	MessageText     = "text"
	MessageImage    = "image"
	MessageActivity = "activity" // share of a sport activity inside a chat
)

// ReadReceipt records when a participant read a message.
type ReadReceipt struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	ReadAt time.Time          `bson:"read_at" json:"read_at"`
}

// Message belongs to a conversation. Deleted messages are soft-deleted so
// read receipts and ordering stay intact.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`

	MessageType string              `bson:"message_type" json:"message_type"`
	Content     string              `bson:"content,omitempty" json:"content,omitempty"`
	MediaURL    string              `bson:"media_url,omitempty" json:"media_url,omitempty"`
	ActivityID  *primitive.ObjectID `bson:"activity_id,omitempty" json:"activity_id,omitempty"`

	ReadBy    []ReadReceipt `bson:"read_by" json:"read_by"`
	IsEdited  bool          `bson:"is_edited" json:"is_edited"`
	IsDeleted bool          `bson:"is_deleted" json:"is_deleted"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
