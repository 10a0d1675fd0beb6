// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"errors"
	"time"

	conversationstore "github.com/pitchside/pitchside/internal/app/store/conversations"
	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no message matches the lookup.
	ErrNotFound = errors.New("message not found")
	// ErrNotAParticipant is returned when the sender does not belong to the conversation.
	ErrNotAParticipant = errors.New("user is not a participant of this conversation")
)

type Store struct {
	c     *mongo.Collection
	convs *conversationstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("messages"),
		convs: conversationstore.New(db),
	}
}

// Create inserts a message and updates the conversation's last-message
// pointers. The sender must be a conversation participant.
func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	conv, err := s.convs.GetByID(ctx, m.ConversationID)
	if err != nil {
		return models.Message{}, err
	}
	if !conv.HasParticipant(m.SenderID) {
		return models.Message{}, ErrNotAParticipant
	}

	m.ID = primitive.NewObjectID()
	m.Content = sanitize.Text(m.Content)
	if m.MessageType == "" {
		m.MessageType = models.MessageText
	}
	m.ReadBy = []models.ReadReceipt{}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	if err := s.convs.SetLastMessage(ctx, m.ConversationID, m.ID, now); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// GetByID loads a message by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var m models.Message
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByConversation returns a conversation's messages, oldest first, for a
// participant. Soft-deleted messages keep their slot with content removed at
// the handler.
func (s *Store) GetByConversation(ctx context.Context, conversationID, userID primitive.ObjectID, limit int64) ([]models.Message, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotAParticipant
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead records a read receipt for userID. Reading twice is a no-op; the
// filter keeps one receipt per reader.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "read_by.user_id": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"read_by": models.ReadReceipt{
		UserID: userID,
		ReadAt: time.Now().UTC(),
	}}}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish an unknown message from a repeat read.
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes a message; only the sender may delete. Receipts and
// ordering stay intact.
func (s *Store) Delete(ctx context.Context, id, senderID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "sender_id": senderID},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
