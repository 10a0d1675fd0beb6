// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation statuses.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
	InviteStatusExpired  = "expired"
)

// ActivityInvitation invites a user to join a sport activity. Accepting runs
// the same membership guard as a direct join.
type ActivityInvitation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivityID primitive.ObjectID `bson:"activity_id" json:"activity_id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`

	Status  string `bson:"status" json:"status"`
	Message string `bson:"message,omitempty" json:"message,omitempty"`

	SentAt      time.Time  `bson:"sent_at" json:"sent_at"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"responded_at,omitempty"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
