// internal/app/store/invitations/invitationstore.go
package invitationstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no invitation matches the lookup.
	ErrNotFound = errors.New("invitation not found")
	// ErrDuplicateInvite is returned when a pending invitation for the same
	// activity and receiver already exists.
	ErrDuplicateInvite = errors.New("a pending invitation for this activity already exists")
	// ErrSelfInvite is returned when sender and receiver are the same user.
	ErrSelfInvite = errors.New("cannot invite yourself")
	// ErrNotPending is returned when responding to an already-answered invitation.
	ErrNotPending = errors.New("invitation is no longer pending")
	// ErrExpired is returned when responding after the expiry deadline.
	ErrExpired = errors.New("invitation has expired")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_invitations")}
}

// Create inserts a pending invitation. The partial unique index on
// (activity_id, receiver_id, status=pending) rejects duplicate invites while
// allowing a fresh invite after a decline.
func (s *Store) Create(ctx context.Context, inv models.ActivityInvitation) (models.ActivityInvitation, error) {
	if inv.SenderID == inv.ReceiverID {
		return models.ActivityInvitation{}, ErrSelfInvite
	}

	inv.ID = primitive.NewObjectID()
	inv.Status = models.InviteStatusPending
	inv.Message = sanitize.Text(inv.Message)

	now := time.Now().UTC()
	inv.SentAt = now
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ActivityInvitation{}, ErrDuplicateInvite
		}
		return models.ActivityInvitation{}, err
	}
	return inv, nil
}

// GetByID loads an invitation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ActivityInvitation, error) {
	var inv models.ActivityInvitation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// GetReceived returns invitations addressed to userID, pending first, then
// newest.
func (s *Store) GetReceived(ctx context.Context, userID primitive.ObjectID) ([]models.ActivityInvitation, error) {
	return s.find(ctx, bson.M{"receiver_id": userID})
}

// GetSent returns invitations sent by userID, pending first, then newest.
func (s *Store) GetSent(ctx context.Context, userID primitive.ObjectID) ([]models.ActivityInvitation, error) {
	return s.find(ctx, bson.M{"sender_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.ActivityInvitation, error) {
	// Descending status order puts "pending" first.
	opts := options.Find().SetSort(bson.D{
		{Key: "status", Value: -1},
		{Key: "sent_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var invs []models.ActivityInvitation
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// Reopen puts an accepted invitation back to pending, clearing the response
// time. Used when an accept could not complete.
func (s *Store) Reopen(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.InviteStatusAccepted},
		bson.M{
			"$set":   bson.M{"status": models.InviteStatusPending, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"responded_at": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpirePending flips pending invitations whose deadline has passed to
// expired. Returns how many were flipped.
func (s *Store) ExpirePending(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateMany(ctx,
		bson.M{"status": models.InviteStatusPending, "expires_at": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"status": models.InviteStatusExpired, "updated_at": now}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Respond transitions a pending invitation to the given status. Only the
// receiver may respond, and the transition is atomic: the filter requires the
// invitation to still be pending.
func (s *Store) Respond(ctx context.Context, id, receiverID primitive.ObjectID, status string) (*models.ActivityInvitation, error) {
	now := time.Now().UTC()

	filter := bson.M{"_id": id, "receiver_id": receiverID, "status": models.InviteStatusPending}
	update := bson.M{"$set": bson.M{
		"status":       status,
		"responded_at": now,
		"updated_at":   now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inv models.ActivityInvitation
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&inv)
	if err == nil {
		if inv.ExpiresAt != nil && inv.ExpiresAt.Before(now) {
			// Responded past the deadline; flip to expired and report it.
			_, _ = s.c.UpdateOne(ctx, bson.M{"_id": id},
				bson.M{"$set": bson.M{"status": models.InviteStatusExpired, "updated_at": now}})
			return nil, ErrExpired
		}
		return &inv, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Classify: missing vs already answered.
	existing, getErr := s.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.ReceiverID != receiverID {
		return nil, ErrNotFound
	}
	return nil, ErrNotPending
}
