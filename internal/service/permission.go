package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
)

// RoleDetacher detaches a permission id from every role referencing it.
// Implemented by RoleService; passed explicitly into Delete to keep the
// dependency direction visible and the cascade independently testable.
type RoleDetacher interface {
	DetachPermission(ctx context.Context, permissionID string) error
}

// PermissionService is the audited facade over the permission repository.
type PermissionService struct {
	permissions *repository.PermissionRepository
	audits      *AuditService
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(permissions *repository.PermissionRepository, audits *AuditService) *PermissionService {
	return &PermissionService{permissions: permissions, audits: audits}
}

// Create audits and creates a new permission.
func (s *PermissionService) Create(ctx context.Context, actorID string, permission models.Permission) (*models.Permission, error) {
	log.Debug().Str("name", permission.Name).Msg("creating permission")

	audit := models.NewAudit(actorID, models.ActionCreate, permission.ID, models.ResourceIDSingle, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.Create(ctx, permission)
}

// FindAll audits and returns every permission.
func (s *PermissionService) FindAll(ctx context.Context, actorID string) ([]models.Permission, error) {
	audit := models.NewAudit(actorID, models.ActionRead, "", models.ResourceIDNone, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.FindAll(ctx)
}

// FindByID audits and returns the permission with the given id.
func (s *PermissionService) FindByID(ctx context.Context, actorID, id string) (*models.Permission, error) {
	audit := models.NewAudit(actorID, models.ActionRead, id, models.ResourceIDSingle, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.FindByID(ctx, id)
}

// FindByName audits and returns the permission with the given name.
func (s *PermissionService) FindByName(ctx context.Context, actorID, name string) (*models.Permission, error) {
	audit := models.NewAudit(actorID, models.ActionRead, name, models.ResourceIDName, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.FindByName(ctx, name)
}

// FindByIDVec audits and returns the subset of permissions whose ids appear in ids.
func (s *PermissionService) FindByIDVec(ctx context.Context, actorID string, ids []string) ([]models.Permission, error) {
	audit := models.NewAudit(actorID, models.ActionRead, strings.Join(ids, ","), models.ResourceIDVec, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.FindByIDVec(ctx, ids)
}

// Update audits and updates the permission.
func (s *PermissionService) Update(ctx context.Context, actorID string, permission models.Permission) (*models.Permission, error) {
	log.Debug().Str("id", permission.ID).Msg("updating permission")

	audit := models.NewAudit(actorID, models.ActionUpdate, permission.ID, models.ResourceIDSingle, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.Update(ctx, permission)
}

// Delete audits and deletes the permission with the given id, then detaches
// the id from every role referencing it so no role keeps a dangling
// permission reference.
func (s *PermissionService) Delete(ctx context.Context, actorID, id string, roles RoleDetacher) error {
	log.Debug().Str("id", id).Msg("deleting permission")

	audit := models.NewAudit(actorID, models.ActionDelete, id, models.ResourceIDSingle, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return err
	}

	if err := s.permissions.Delete(ctx, id); err != nil {
		return err
	}

	return roles.DetachPermission(ctx, id)
}

// Search audits and searches permissions by free text.
func (s *PermissionService) Search(ctx context.Context, actorID, text string) ([]models.Permission, error) {
	audit := models.NewAudit(actorID, models.ActionSearch, text, models.ResourceIDText, models.ResourceTypePermission)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.permissions.Search(ctx, text)
}
