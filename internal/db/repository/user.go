package repository

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

// UserCollection is the document collection holding users.
const UserCollection = "users"

// UserRepository persists User entities. Username and email are natural keys:
// create and update refuse collisions, update excluding the entity's own id.
type UserRepository struct {
	users store.Collection
}

// NewUserRepository creates a new UserRepository on the given store.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{users: s.Collection(UserCollection)}
}

// Create inserts a new user and re-reads it by id to return the canonical
// stored value.
func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	if user.Username == "" {
		return nil, ErrUsernameEmpty
	}

	if user.Email == "" {
		return nil, ErrEmailEmpty
	}

	if _, err := r.FindByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if err := r.users.InsertOne(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, userDuplicate(err)
		}

		return nil, errors.Wrap(err, "failed to insert user")
	}

	return r.FindByID(ctx, user.ID)
}

// FindAll returns every user.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.users.Find(ctx, bson.M{}, &users); err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}

	return users, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrUserIDEmpty
	}

	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername returns the user with the given username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	return r.findOne(ctx, bson.M{"username": username})
}

// FindByEmail returns the user with the given email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailEmpty
	}

	return r.findOne(ctx, bson.M{"email": email})
}

// FindByIDVec returns the subset of users whose ids appear in ids.
// Order is not significant; absent ids are skipped silently.
func (r *UserRepository) FindByIDVec(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, ErrIDListEmpty
	}

	var users []models.User
	if err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &users); err != nil {
		return nil, errors.Wrap(err, "failed to find users by ids")
	}

	return users, nil
}

// Update re-checks natural-key uniqueness excluding the user's own id, then
// applies the update and returns the stored result. The password hash is not
// touched here; it only changes through dedicated credential flows.
func (r *UserRepository) Update(ctx context.Context, user models.User) (*models.User, error) {
	if user.ID == "" {
		return nil, ErrUserIDEmpty
	}

	if user.Username == "" {
		return nil, ErrUsernameEmpty
	}

	if user.Email == "" {
		return nil, ErrEmailEmpty
	}

	if err := r.checkTaken(ctx, "username", user.Username, user.ID, ErrUsernameTaken); err != nil {
		return nil, err
	}

	if err := r.checkTaken(ctx, "email", user.Email, user.ID, ErrEmailTaken); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"username":  user.Username,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"roles":     user.Roles,
		"enabled":   user.Enabled,
		"updatedAt": time.Now().UTC(),
	}}

	var updated models.User

	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, &updated)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrUserNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return nil, userDuplicate(err)
	case err != nil:
		return nil, errors.Wrap(err, "failed to update user")
	}

	return &updated, nil
}

// Delete removes the user with the given id. Deleting an absent user is not
// an error.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrUserIDEmpty
	}

	return errors.Wrap(r.users.DeleteOne(ctx, bson.M{"_id": id}), "failed to delete user")
}

// Search returns every user whose username, email or name contains text,
// case-insensitively.
func (r *UserRepository) Search(ctx context.Context, text string) ([]models.User, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}

	filter := bson.M{"$or": []bson.M{
		{"username": pattern},
		{"email": pattern},
		{"firstName": pattern},
		{"lastName": pattern},
	}}

	var users []models.User
	if err := r.users.Find(ctx, filter, &users); err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User

	err := r.users.FindOne(ctx, filter, &user)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, errors.Wrap(err, "failed to find user")
	}

	return &user, nil
}

// checkTaken fails with taken when another document holds value for field.
func (r *UserRepository) checkTaken(ctx context.Context, field, value, selfID string, taken error) error {
	var existing models.User

	err := r.users.FindOne(ctx, bson.M{field: value, "_id": bson.M{"$ne": selfID}}, &existing)

	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrNoDocuments):
		return nil
	}

	return errors.Wrap(err, "failed to check user uniqueness")
}

// userDuplicate maps a unique-index violation to the colliding natural key.
func userDuplicate(err error) error {
	if strings.Contains(err.Error(), "email") {
		return ErrEmailTaken
	}

	return ErrUsernameTaken
}
