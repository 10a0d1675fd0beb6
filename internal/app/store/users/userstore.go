// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/app/system/normalize"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/sanitize"
	"github.com/pitchside/pitchside/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing fields. The caller supplies
// PasswordHash; this store never sees plaintext passwords.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.IsActive = true

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, s.classifyDup(ctx, u)
		}
		return models.User{}, err
	}
	return u, nil
}

// classifyDup decides which unique index an insert collided with so callers
// get a precise error.
func (s *Store) classifyDup(ctx context.Context, u models.User) error {
	err := s.c.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by case-insensitive username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	filter := bson.M{"username_ci": text.Fold(normalize.Username(username))}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with the given ID exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// List returns active users, newest first.
func (s *Store) List(ctx context.Context, limit, offset int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := s.c.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update describes a partial update to a user profile. Absent fields are
// untouched; null fields are cleared.
type Update struct {
	Name           patch.Field[string]
	FirstName      patch.Field[string]
	LastName       patch.Field[string]
	Bio            patch.Field[string]
	ProfileImage   patch.Field[string]
	PhoneNumber    patch.Field[string]
	DateOfBirth    patch.Field[time.Time]
	Gender         patch.Field[string]
	Location       patch.Field[string]
	Latitude       patch.Field[float64]
	Longitude      patch.Field[float64]
	PreferredSport patch.Field[string]
	SkillLevel     patch.Field[string]
}

// Apply performs the partial update and returns the updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	setOrUnset := func(field string, f patch.Field[string], clean func(string) string) {
		if !f.Present() {
			return
		}
		if f.IsNull() {
			unset[field] = ""
			return
		}
		v, _ := f.Value()
		if clean != nil {
			v = clean(v)
		}
		set[field] = v
	}

	setOrUnset("name", upd.Name, normalize.Name)
	setOrUnset("first_name", upd.FirstName, normalize.Name)
	setOrUnset("last_name", upd.LastName, normalize.Name)
	setOrUnset("bio", upd.Bio, sanitize.Text)
	setOrUnset("profile_image", upd.ProfileImage, nil)
	setOrUnset("phone_number", upd.PhoneNumber, nil)
	setOrUnset("gender", upd.Gender, nil)
	setOrUnset("location", upd.Location, nil)
	setOrUnset("preferred_sport", upd.PreferredSport, normalize.SportType)
	setOrUnset("skill_level", upd.SkillLevel, nil)

	if upd.DateOfBirth.Present() {
		if upd.DateOfBirth.IsNull() {
			unset["date_of_birth"] = ""
		} else {
			v, _ := upd.DateOfBirth.Value()
			set["date_of_birth"] = v
		}
	}
	if upd.Latitude.Present() {
		if upd.Latitude.IsNull() {
			unset["latitude"] = ""
		} else {
			v, _ := upd.Latitude.Value()
			set["latitude"] = v
		}
	}
	if upd.Longitude.Present() {
		if upd.Longitude.IsNull() {
			unset["longitude"] = ""
		} else {
			v, _ := upd.Longitude.Value()
			set["longitude"] = v
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// TouchLogin records a successful login.
func (s *Store) TouchLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}})
	return err
}

// Delete removes a user document. Returns ErrNotFound when nothing matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
