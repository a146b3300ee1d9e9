package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
)

// AuditService appends records to the audit ledger. It is the precondition
// gate for every other service operation and is itself not audited.
type AuditService struct {
	audits *repository.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(audits *repository.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

// Create appends an audit record to the ledger.
func (s *AuditService) Create(ctx context.Context, audit models.Audit) (*models.Audit, error) {
	return s.audits.Create(ctx, audit)
}

// FindAll returns the full ledger. Reading the ledger is the one read that is
// not itself audited; gating it on its own append would double every entry.
func (s *AuditService) FindAll(ctx context.Context) ([]models.Audit, error) {
	return s.audits.FindAll(ctx)
}

// gate appends the audit record and converts a failed append into
// ErrAuditDenied so callers abort before touching the store.
func (s *AuditService) gate(ctx context.Context, audit models.Audit) error {
	if _, err := s.Create(ctx, audit); err != nil {
		log.Error().Err(err).
			Str("action", string(audit.Action)).
			Str("resourceType", string(audit.ResourceType)).
			Msg("audit write failed, denying operation")

		return fmt.Errorf("%w: %v", ErrAuditDenied, err)
	}

	return nil
}
