// internal/app/store/conversations/conversationstore.go
package conversationstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no conversation matches the lookup.
	ErrNotFound = errors.New("conversation not found")
	// ErrTooFewParticipants is returned for conversations with fewer than two members.
	ErrTooFewParticipants = errors.New("a conversation needs at least two participants")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("conversations")}
}

// Create inserts a new conversation. Duplicate participant ids are collapsed.
// For direct conversations between the same two users an existing
// conversation is reused instead of creating a second one.
func (s *Store) Create(ctx context.Context, conv models.Conversation) (models.Conversation, error) {
	conv.Participants = dedupe(conv.Participants)
	if len(conv.Participants) < 2 {
		return models.Conversation{}, ErrTooFewParticipants
	}
	if conv.Type == "" {
		conv.Type = models.ConversationDirect
	}

	if conv.Type == models.ConversationDirect && len(conv.Participants) == 2 {
		existing, err := s.findDirect(ctx, conv.Participants[0], conv.Participants[1])
		if err == nil {
			return *existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return models.Conversation{}, err
		}
	}

	conv.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, conv); err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

func (s *Store) findDirect(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	filter := bson.M{
		"conversation_type": models.ConversationDirect,
		"participants":      bson.M{"$all": bson.A{a, b}, "$size": 2},
	}
	var conv models.Conversation
	if err := s.c.FindOne(ctx, filter).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// GetByID loads a conversation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// GetByUser returns the conversations userID participates in, most recently
// active first.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "last_message_at", Value: -1},
		{Key: "updated_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var convs []models.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// SetLastMessage updates the denormalized last-message pointers.
func (s *Store) SetLastMessage(ctx context.Context, id, messageID primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"last_message_id": messageID,
		"last_message_at": at,
		"updated_at":      at,
	}})
	return err
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
