package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
)

// RoleService is the audited facade over the role repository. It also serves
// as the role-management collaborator for permission deletion, detaching
// deleted permission ids from every referencing role.
type RoleService struct {
	roles  *repository.RoleRepository
	audits *AuditService
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles *repository.RoleRepository, audits *AuditService) *RoleService {
	return &RoleService{roles: roles, audits: audits}
}

// Create audits and creates a new role.
func (s *RoleService) Create(ctx context.Context, actorID string, role models.Role) (*models.Role, error) {
	log.Debug().Str("name", role.Name).Msg("creating role")

	audit := models.NewAudit(actorID, models.ActionCreate, role.ID, models.ResourceIDSingle, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.Create(ctx, role)
}

// FindAll audits and returns every role.
func (s *RoleService) FindAll(ctx context.Context, actorID string) ([]models.Role, error) {
	audit := models.NewAudit(actorID, models.ActionRead, "", models.ResourceIDNone, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.FindAll(ctx)
}

// FindByID audits and returns the role with the given id.
func (s *RoleService) FindByID(ctx context.Context, actorID, id string) (*models.Role, error) {
	audit := models.NewAudit(actorID, models.ActionRead, id, models.ResourceIDSingle, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.FindByID(ctx, id)
}

// FindByName audits and returns the role with the given name.
func (s *RoleService) FindByName(ctx context.Context, actorID, name string) (*models.Role, error) {
	audit := models.NewAudit(actorID, models.ActionRead, name, models.ResourceIDName, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.FindByName(ctx, name)
}

// FindByIDVec audits and returns the subset of roles whose ids appear in ids.
func (s *RoleService) FindByIDVec(ctx context.Context, actorID string, ids []string) ([]models.Role, error) {
	audit := models.NewAudit(actorID, models.ActionRead, strings.Join(ids, ","), models.ResourceIDVec, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.FindByIDVec(ctx, ids)
}

// Update audits and updates the role.
func (s *RoleService) Update(ctx context.Context, actorID string, role models.Role) (*models.Role, error) {
	log.Debug().Str("id", role.ID).Msg("updating role")

	audit := models.NewAudit(actorID, models.ActionUpdate, role.ID, models.ResourceIDSingle, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.Update(ctx, role)
}

// Delete audits and deletes the role with the given id.
func (s *RoleService) Delete(ctx context.Context, actorID, id string) error {
	log.Debug().Str("id", id).Msg("deleting role")

	audit := models.NewAudit(actorID, models.ActionDelete, id, models.ResourceIDSingle, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return err
	}

	return s.roles.Delete(ctx, id)
}

// Search audits and searches roles by free text.
func (s *RoleService) Search(ctx context.Context, actorID, text string) ([]models.Role, error) {
	audit := models.NewAudit(actorID, models.ActionSearch, text, models.ResourceIDText, models.ResourceTypeRole)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.roles.Search(ctx, text)
}

// DetachPermission removes the permission id from every role referencing it.
// It runs as part of the already audited permission delete, so no separate
// audit record is written.
func (s *RoleService) DetachPermission(ctx context.Context, permissionID string) error {
	return s.roles.DetachPermission(ctx, permissionID)
}
