package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account in the system.
// Users authenticate with a username and password and carry a set of role ids
// that resolve to permissions through the roles collection.
type User struct {
	// ID is the unique identifier for the user, assigned once at creation.
	ID string `bson:"_id" json:"id"`
	// Username is the unique username for login.
	Username string `bson:"username" json:"username"`
	// Email is the user's unique email address. It doubles as the subject of
	// issued session tokens.
	Email string `bson:"email" json:"email"`
	// FirstName is the user's first or given name.
	FirstName string `bson:"firstName" json:"firstName"`
	// LastName is the user's last or family name.
	LastName string `bson:"lastName" json:"lastName"`
	// Password is the salted argon2id hash of the user's password.
	// The plaintext is never stored.
	Password string `bson:"password" json:"-"`
	// Roles holds the ids of the roles assigned to this user.
	Roles []string `bson:"roles,omitempty" json:"roles,omitempty"`
	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	// Enabled indicates whether the account may log in.
	Enabled bool `bson:"enabled" json:"enabled"`
}

// NewUser builds a full User from its creation fields: a freshly generated id,
// matching creation and update timestamps, and an enabled account.
// The password must already be hashed by the caller.
func NewUser(username, email, firstName, lastName, passwordHash string, roles []string) User {
	now := time.Now().UTC()

	return User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  passwordHash,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
		Enabled:   true,
	}
}
