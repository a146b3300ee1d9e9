package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
)

// UserService is the audited facade over the user repository.
type UserService struct {
	users  *repository.UserRepository
	audits *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, audits *AuditService) *UserService {
	return &UserService{users: users, audits: audits}
}

// Create audits and creates a new user.
func (s *UserService) Create(ctx context.Context, actorID string, user models.User) (*models.User, error) {
	log.Debug().Str("username", user.Username).Msg("creating user")

	audit := models.NewAudit(actorID, models.ActionCreate, user.ID, models.ResourceIDSingle, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.Create(ctx, user)
}

// FindAll audits and returns every user.
func (s *UserService) FindAll(ctx context.Context, actorID string) ([]models.User, error) {
	audit := models.NewAudit(actorID, models.ActionRead, "", models.ResourceIDNone, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.FindAll(ctx)
}

// FindByID audits and returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, actorID, id string) (*models.User, error) {
	audit := models.NewAudit(actorID, models.ActionRead, id, models.ResourceIDSingle, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, id)
}

// FindByUsername audits and returns the user with the given username.
func (s *UserService) FindByUsername(ctx context.Context, actorID, username string) (*models.User, error) {
	audit := models.NewAudit(actorID, models.ActionRead, username, models.ResourceIDName, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.FindByUsername(ctx, username)
}

// FindByEmail audits and returns the user with the given email address.
func (s *UserService) FindByEmail(ctx context.Context, actorID, email string) (*models.User, error) {
	audit := models.NewAudit(actorID, models.ActionRead, email, models.ResourceIDName, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.FindByEmail(ctx, email)
}

// FindByIDVec audits and returns the subset of users whose ids appear in ids.
func (s *UserService) FindByIDVec(ctx context.Context, actorID string, ids []string) ([]models.User, error) {
	audit := models.NewAudit(actorID, models.ActionRead, strings.Join(ids, ","), models.ResourceIDVec, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.FindByIDVec(ctx, ids)
}

// Update audits and updates the user.
func (s *UserService) Update(ctx context.Context, actorID string, user models.User) (*models.User, error) {
	log.Debug().Str("id", user.ID).Msg("updating user")

	audit := models.NewAudit(actorID, models.ActionUpdate, user.ID, models.ResourceIDSingle, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.Update(ctx, user)
}

// Delete audits and deletes the user with the given id.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	log.Debug().Str("id", id).Msg("deleting user")

	audit := models.NewAudit(actorID, models.ActionDelete, id, models.ResourceIDSingle, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return err
	}

	return s.users.Delete(ctx, id)
}

// Search audits and searches users by free text.
func (s *UserService) Search(ctx context.Context, actorID, text string) ([]models.User, error) {
	audit := models.NewAudit(actorID, models.ActionSearch, text, models.ResourceIDText, models.ResourceTypeUser)
	if err := s.audits.gate(ctx, audit); err != nil {
		return nil, err
	}

	return s.users.Search(ctx, text)
}
