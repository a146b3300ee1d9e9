// Package service wraps every repository with the mandatory audit coupling:
// each public operation first appends an audit record describing the intended
// action and only invokes the underlying repository when that append
// succeeded. The coupling is fail-closed and covers reads exactly like writes;
// an unavailable ledger denies the request even when the store is healthy.
package service

import (
	"errors"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

// SystemActor is the actor id recorded for operations the service performs on
// its own behalf, e.g. identity lookups during authentication.
const SystemActor = "SYSTEM"

// ErrAuditDenied is returned when the audit ledger write fails. The wrapped
// operation is aborted before it touches the store.
var ErrAuditDenied = errors.New("audit write failed, operation denied")

// Services bundles the audited services over one document store.
type Services struct {
	Audits      *AuditService
	Users       *UserService
	Roles       *RoleService
	Permissions *PermissionService
}

// New wires the repositories and audited services on the given store.
func New(s store.Store) *Services {
	audits := NewAuditService(repository.NewAuditRepository(s))

	return &Services{
		Audits:      audits,
		Users:       NewUserService(repository.NewUserRepository(s), audits),
		Roles:       NewRoleService(repository.NewRoleRepository(s), audits),
		Permissions: NewPermissionService(repository.NewPermissionRepository(s), audits),
	}
}
