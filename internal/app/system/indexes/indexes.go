// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"sport_activities", ensureActivities},
		{"sports", ensureSports},
		{"posts", ensurePosts},
		{"comments", ensureComments},
		{"follows", ensureFollows},
		{"conversations", ensureConversations},
		{"messages", ensureMessages},
		{"notifications", ensureNotifications},
		{"reviews", ensureReviews},
		{"user_settings", ensureUserSettings},
		{"activity_invitations", ensureInvitations},
	}

	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_username_ci").SetUnique(true),
		},
	})
	return err
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("sport_activities").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "unique_id", Value: 1}},
			Options: options.Index().SetName("uniq_activities_unique_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "sport_type", Value: 1}, {Key: "scheduled_date", Value: 1}},
			Options: options.Index().SetName("idx_activities_type_date"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activities_creator"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "scheduled_date", Value: 1}},
			Options: options.Index().SetName("idx_activities_active_date"),
		},
	})
	return err
}

func ensureSports(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("sports").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetName("uniq_sports_type").SetUnique(true),
	})
	return err
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_posts_user"),
		},
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_posts_activity"),
		},
	})
	return err
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_comments_post"),
	})
	return err
}

func ensureFollows(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("follows").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "following_id", Value: 1}},
			Options: options.Index().SetName("uniq_follows_edge").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "following_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_follows_following"),
		},
	})
	return err
}

func ensureConversations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("conversations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "participants", Value: 1}, {Key: "last_message_at", Value: -1}},
		Options: options.Index().SetName("idx_conversations_participant"),
	})
	return err
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_messages_conversation"),
	})
	return err
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}},
			Options: options.Index().SetName("idx_notifications_unread"),
		},
	})
	return err
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("reviews").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reviews_activity"),
		},
		{
			Keys:    bson.D{{Key: "reviewee_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reviews_reviewee"),
		},
	})
	return err
}

func ensureUserSettings(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("user_settings").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("uniq_settings_user").SetUnique(true),
	})
	return err
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	// One pending invitation per (activity, receiver); answered invitations
	// do not block a re-invite.
	_, err := db.Collection("activity_invitations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "activity_id", Value: 1}, {Key: "receiver_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_invitations_pending").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending"}),
		},
		{
			Keys:    bson.D{{Key: "receiver_id", Value: 1}, {Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("idx_invitations_receiver"),
		},
	})
	return err
}
