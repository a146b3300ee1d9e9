// Package dto holds the response shapes returned by the web handlers and the
// assembler that resolves the user, role and permission graph into them.
package dto

import (
	"time"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
)

// PermissionResponse is the wire form of a permission.
type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleResponse is the wire form of a role with its permissions resolved.
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
}

// UserResponse is the wire form of a user with the full role and permission
// graph resolved. The password hash never crosses this boundary.
type UserResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Roles     []RoleResponse `json:"roles"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Enabled   bool           `json:"enabled"`
}

// NewPermissionResponse maps a permission model to its wire form.
func NewPermissionResponse(p models.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
}
