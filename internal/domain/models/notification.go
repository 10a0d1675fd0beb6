// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotifyFollow           = "follow"
	NotifyLike             = "like"
	NotifyComment          = "comment"
	NotifyInvite           = "invite"
	NotifyMessage          = "message"
	NotifyActivityReminder = "activity_reminder"
	NotifyActivityUpdate   = "activity_update"
)

// Notification is an in-app notification addressed to a single user.
type Notification struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Type  string `bson:"notification_type" json:"notification_type"`
	Title string `bson:"title" json:"title"`
	Body  string `bson:"body,omitempty" json:"body,omitempty"`

	// Optional references back to the triggering entities.
	SenderID   *primitive.ObjectID `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	ActivityID *primitive.ObjectID `bson:"activity_id,omitempty" json:"activity_id,omitempty"`
	PostID     *primitive.ObjectID `bson:"post_id,omitempty" json:"post_id,omitempty"`
	CommentID  *primitive.ObjectID `bson:"comment_id,omitempty" json:"comment_id,omitempty"`
	ActionURL  string              `bson:"action_url,omitempty" json:"action_url,omitempty"`

	IsRead bool       `bson:"is_read" json:"is_read"`
	ReadAt *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
