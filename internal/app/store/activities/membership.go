// internal/app/store/activities/membership.go
package activitystore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when the activity does not exist.
	ErrNotFound = errors.New("activity not found")
	// ErrActivityFull is returned when the activity is at capacity.
	ErrActivityFull = errors.New("activity is full")
	// ErrAlreadyJoined is returned when the user is already a participant.
	ErrAlreadyJoined = errors.New("user already joined this activity")
	// ErrNotAMember is returned when the user is not a participant.
	ErrNotAMember = errors.New("user is not a participant of this activity")
)

// CanJoin checks join preconditions against an in-memory document. Order
// matters: capacity is reported before membership, so a full activity answers
// ErrActivityFull even to someone already inside it.
func CanJoin(a *models.SportActivity, userID primitive.ObjectID) error {
	if a == nil {
		return ErrNotFound
	}
	if a.IsFull() {
		return ErrActivityFull
	}
	if a.HasParticipant(userID) {
		return ErrAlreadyJoined
	}
	return nil
}

// CanLeave checks the leave precondition against an in-memory document.
func CanLeave(a *models.SportActivity, userID primitive.ObjectID) error {
	if a == nil {
		return ErrNotFound
	}
	if !a.HasParticipant(userID) {
		return ErrNotAMember
	}
	return nil
}

// Join adds userID to the participant set. The preconditions are enforced by
// the update filter itself, so two concurrent joins for the last slot cannot
// both succeed: the filter requires the user to be absent and, when a maximum
// is set, current_participants to be below it. When the update matches
// nothing the document is re-read once to classify the failure.
func (s *Store) Join(ctx context.Context, activityID, userID primitive.ObjectID) (*models.SportActivity, error) {
	filter := bson.M{
		"_id":          activityID,
		"participants": bson.M{"$ne": userID},
		"$expr": bson.M{"$or": bson.A{
			bson.M{"$lte": bson.A{"$max_participants", primitive.Null{}}},
			bson.M{"$lt": bson.A{"$current_participants", "$max_participants"}},
		}},
	}
	update := bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$inc":      bson.M{"current_participants": 1},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		a, err := s.GetByID(ctx, activityID)
		if err != nil {
			return nil, err
		}
		if guardErr := CanJoin(a, userID); guardErr != nil {
			return nil, guardErr
		}
		// The precondition holds now but did not when the update ran, so the
		// activity was full at that moment. Report that rather than retrying.
		return nil, ErrActivityFull
	}

	return s.GetByID(ctx, activityID)
}

// Leave removes userID from the participant set with the same
// filter-enforces-precondition shape as Join.
func (s *Store) Leave(ctx context.Context, activityID, userID primitive.ObjectID) (*models.SportActivity, error) {
	filter := bson.M{
		"_id":          activityID,
		"participants": userID,
	}
	update := bson.M{
		"$pull": bson.M{"participants": userID},
		"$inc":  bson.M{"current_participants": -1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, activityID); err != nil {
			return nil, err
		}
		return nil, ErrNotAMember
	}

	return s.GetByID(ctx, activityID)
}
