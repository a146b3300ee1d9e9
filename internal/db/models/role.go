package models

import "github.com/google/uuid"

// DefaultRoleName is the well-known role attached to self-registered users.
const DefaultRoleName = "DEFAULT"

// Role represents a role in the role-based access control (RBAC) system.
// Roles are collections of permission ids that can be assigned to users.
type Role struct {
	// ID is the unique identifier for the role, assigned once at creation.
	ID string `bson:"_id" json:"id"`
	// Name is the unique name of the role (e.g., "DEFAULT", "ADMIN").
	Name string `bson:"name" json:"name"`
	// Permissions holds the ids of the permissions granted by this role.
	Permissions []string `bson:"permissions,omitempty" json:"permissions,omitempty"`
}

// NewRole builds a Role with a freshly generated id.
func NewRole(name string, permissions []string) Role {
	return Role{
		ID:          uuid.NewString(),
		Name:        name,
		Permissions: permissions,
	}
}
