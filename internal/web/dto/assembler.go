package dto

import (
	"context"

	"github.com/pkg/errors"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
)

// Assembler resolves the id references on a user into nested role and
// permission responses. Resolution goes through the audited services, with the
// assembled user itself as the acting principal, so building a response leaves
// the same trail as any other read.
type Assembler struct {
	roles       *service.RoleService
	permissions *service.PermissionService
}

// NewAssembler creates a new Assembler on top of the audited services.
func NewAssembler(roles *service.RoleService, permissions *service.PermissionService) *Assembler {
	return &Assembler{roles: roles, permissions: permissions}
}

// AssembleUser builds the full user response. Role ids that no longer resolve
// are skipped silently; a failing lookup aborts the whole assembly.
func (a *Assembler) AssembleUser(ctx context.Context, user models.User) (*UserResponse, error) {
	roles, err := a.assembleRoles(ctx, user.ID, user.Roles)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Enabled:   user.Enabled,
	}, nil
}

// AssembleRole builds a single role response with its permissions resolved.
func (a *Assembler) AssembleRole(ctx context.Context, actorID string, role models.Role) (*RoleResponse, error) {
	permissions, err := a.assemblePermissions(ctx, actorID, role.Permissions)
	if err != nil {
		return nil, err
	}

	return &RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: permissions,
	}, nil
}

func (a *Assembler) assembleRoles(ctx context.Context, actorID string, ids []string) ([]RoleResponse, error) {
	out := make([]RoleResponse, 0, len(ids))

	if len(ids) == 0 {
		return out, nil
	}

	roles, err := a.roles.FindByIDVec(ctx, actorID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve roles")
	}

	for _, role := range roles {
		assembled, err := a.AssembleRole(ctx, actorID, role)
		if err != nil {
			return nil, err
		}

		out = append(out, *assembled)
	}

	return out, nil
}

func (a *Assembler) assemblePermissions(ctx context.Context, actorID string, ids []string) ([]PermissionResponse, error) {
	out := make([]PermissionResponse, 0, len(ids))

	if len(ids) == 0 {
		return out, nil
	}

	permissions, err := a.permissions.FindByIDVec(ctx, actorID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve permissions")
	}

	for _, permission := range permissions {
		out = append(out, NewPermissionResponse(permission))
	}

	return out, nil
}
