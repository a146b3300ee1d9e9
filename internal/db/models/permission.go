package models

import "github.com/google/uuid"

// Permission represents a specific permission in the authorization system.
// Permissions define granular access rights and are granted through roles.
type Permission struct {
	// ID is the unique identifier for the permission, assigned once at creation.
	ID string `bson:"_id" json:"id"`
	// Name is the unique permission identifier (e.g., "CAN_UPDATE_USER").
	Name string `bson:"name" json:"name"`
	// Description provides a human-readable explanation of what this permission grants.
	Description string `bson:"description" json:"description"`
}

// NewPermission builds a Permission with a freshly generated id.
func NewPermission(name, description string) Permission {
	return Permission{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
}
