package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

// AuditCollection is the document collection holding the audit ledger.
const AuditCollection = "audits"

// AuditRepository persists Audit records. The ledger is append-only: create is
// the only operation, so history is immutable by construction.
type AuditRepository struct {
	audits store.Collection
}

// NewAuditRepository creates a new AuditRepository on the given store.
func NewAuditRepository(s store.Store) *AuditRepository {
	return &AuditRepository{audits: s.Collection(AuditCollection)}
}

// Create appends an audit record to the ledger.
func (r *AuditRepository) Create(ctx context.Context, audit models.Audit) (*models.Audit, error) {
	if err := r.audits.InsertOne(ctx, audit); err != nil {
		return nil, errors.Wrap(err, "failed to insert audit record")
	}

	return &audit, nil
}

// FindAll returns the full ledger in insertion order.
func (r *AuditRepository) FindAll(ctx context.Context) ([]models.Audit, error) {
	var audits []models.Audit

	if err := r.audits.Find(ctx, bson.M{}, &audits); err != nil {
		return nil, errors.Wrap(err, "failed to find audit records")
	}

	return audits, nil
}
