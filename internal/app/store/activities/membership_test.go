package activitystore_test

import (
	"errors"
	"testing"

	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanJoin(t *testing.T) {
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name    string
		act     *models.SportActivity
		user    primitive.ObjectID
		wantErr error
	}{
		{
			name:    "missing activity",
			act:     nil,
			user:    stranger,
			wantErr: activitystore.ErrNotFound,
		},
		{
			name: "open slot",
			act: &models.SportActivity{
				MaxParticipants:     ptrI(4),
				CurrentParticipants: 3,
				Participants:        []primitive.ObjectID{member},
			},
			user:    stranger,
			wantErr: nil,
		},
		{
			name: "unlimited capacity",
			act: &models.SportActivity{
				CurrentParticipants: 500,
				Participants:        []primitive.ObjectID{member},
			},
			user:    stranger,
			wantErr: nil,
		},
		{
			name: "full",
			act: &models.SportActivity{
				MaxParticipants:     ptrI(1),
				CurrentParticipants: 1,
				Participants:        []primitive.ObjectID{member},
			},
			user:    stranger,
			wantErr: activitystore.ErrActivityFull,
		},
		{
			name: "already joined",
			act: &models.SportActivity{
				MaxParticipants:     ptrI(4),
				CurrentParticipants: 1,
				Participants:        []primitive.ObjectID{member},
			},
			user:    member,
			wantErr: activitystore.ErrAlreadyJoined,
		},
		{
			name: "full wins over already joined",
			act: &models.SportActivity{
				MaxParticipants:     ptrI(1),
				CurrentParticipants: 1,
				Participants:        []primitive.ObjectID{member},
			},
			user:    member,
			wantErr: activitystore.ErrActivityFull,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := activitystore.CanJoin(tt.act, tt.user)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanJoin = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanLeave(t *testing.T) {
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	act := &models.SportActivity{
		Participants:        []primitive.ObjectID{member},
		CurrentParticipants: 1,
	}

	if err := activitystore.CanLeave(act, member); err != nil {
		t.Errorf("member should be able to leave: %v", err)
	}
	if err := activitystore.CanLeave(act, stranger); !errors.Is(err, activitystore.ErrNotAMember) {
		t.Errorf("CanLeave for non-member = %v, want ErrNotAMember", err)
	}
	if err := activitystore.CanLeave(nil, member); !errors.Is(err, activitystore.ErrNotFound) {
		t.Errorf("CanLeave for missing activity = %v, want ErrNotFound", err)
	}
}
