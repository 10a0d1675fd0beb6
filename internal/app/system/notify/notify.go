// internal/app/system/notify/notify.go

// Package notify writes in-app notifications for social events, gated by the
// recipient's settings. Notification failures are logged and never fail the
// operation that triggered them.
package notify

import (
	"context"
	"fmt"

	notificationstore "github.com/pitchside/pitchside/internal/app/store/notifications"
	settingsstore "github.com/pitchside/pitchside/internal/app/store/settings"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Notifier struct {
	notifications *notificationstore.Store
	settings      *settingsstore.Store
	logger        *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Notifier {
	return &Notifier{
		notifications: notificationstore.New(db),
		settings:      settingsstore.New(db),
		logger:        logger,
	}
}

// enabled reports whether the recipient wants notifications of this type.
// Lookup failures default to sending; a flaky settings read should not
// silently drop notifications.
func (n *Notifier) enabled(ctx context.Context, userID primitive.ObjectID, typ string) bool {
	st, err := n.settings.Get(ctx, userID)
	if err != nil {
		n.logger.Warn("settings lookup failed during notification fan-out",
			zap.String("user_id", userID.Hex()), zap.Error(err))
		return true
	}
	switch typ {
	case models.NotifyFollow:
		return st.NotifyOnFollow
	case models.NotifyLike:
		return st.NotifyOnLike
	case models.NotifyComment:
		return st.NotifyOnComment
	case models.NotifyInvite:
		return st.NotifyOnInvite
	case models.NotifyMessage:
		return st.NotifyOnMessage
	case models.NotifyActivityReminder, models.NotifyActivityUpdate:
		return st.NotifyOnActivityReminder
	}
	return true
}

func (n *Notifier) send(ctx context.Context, note models.Notification) {
	if note.UserID.IsZero() {
		return
	}
	// Never notify users about their own actions.
	if note.SenderID != nil && *note.SenderID == note.UserID {
		return
	}
	if !n.enabled(ctx, note.UserID, note.Type) {
		return
	}
	if _, err := n.notifications.Create(ctx, note); err != nil {
		n.logger.Error("failed to write notification",
			zap.String("user_id", note.UserID.Hex()),
			zap.String("type", note.Type),
			zap.Error(err))
	}
}

// Followed notifies userID that follower started following them.
func (n *Notifier) Followed(ctx context.Context, userID, followerID primitive.ObjectID, followerName string) {
	n.send(ctx, models.Notification{
		UserID:   userID,
		Type:     models.NotifyFollow,
		Title:    fmt.Sprintf("%s started following you", followerName),
		SenderID: &followerID,
	})
}

// PostLiked notifies the post author of a new like.
func (n *Notifier) PostLiked(ctx context.Context, post *models.Post, likerID primitive.ObjectID, likerName string) {
	n.send(ctx, models.Notification{
		UserID:   post.UserID,
		Type:     models.NotifyLike,
		Title:    fmt.Sprintf("%s liked your post", likerName),
		SenderID: &likerID,
		PostID:   &post.ID,
	})
}

// CommentAdded notifies the post author of a new comment.
func (n *Notifier) CommentAdded(ctx context.Context, post *models.Post, comment *models.Comment, authorName string) {
	n.send(ctx, models.Notification{
		UserID:    post.UserID,
		Type:      models.NotifyComment,
		Title:     fmt.Sprintf("%s commented on your post", authorName),
		Body:      comment.Body,
		SenderID:  &comment.UserID,
		PostID:    &post.ID,
		CommentID: &comment.ID,
	})
}

// Invited notifies the receiver of an activity invitation.
func (n *Notifier) Invited(ctx context.Context, inv *models.ActivityInvitation, activityName, senderName string) {
	n.send(ctx, models.Notification{
		UserID:     inv.ReceiverID,
		Type:       models.NotifyInvite,
		Title:      fmt.Sprintf("%s invited you to %s", senderName, activityName),
		Body:       inv.Message,
		SenderID:   &inv.SenderID,
		ActivityID: &inv.ActivityID,
	})
}

// MessageSent notifies every other conversation participant of a new message.
func (n *Notifier) MessageSent(ctx context.Context, conv *models.Conversation, msg *models.Message, senderName string) {
	for _, p := range conv.Participants {
		if p == msg.SenderID {
			continue
		}
		n.send(ctx, models.Notification{
			UserID:   p,
			Type:     models.NotifyMessage,
			Title:    fmt.Sprintf("New message from %s", senderName),
			SenderID: &msg.SenderID,
		})
	}
}
