package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

var errLedgerDown = errors.New("ledger unavailable")

// brokenLedgerStore lets a test cut the audit collection off while the rest of
// the store keeps working.
type brokenLedgerStore struct {
	inner *store.Memory
	fail  bool
}

func (s *brokenLedgerStore) Collection(name string) store.Collection {
	col := s.inner.Collection(name)
	if name == repository.AuditCollection {
		return &brokenLedgerCollection{Collection: col, store: s}
	}

	return col
}

type brokenLedgerCollection struct {
	store.Collection
	store *brokenLedgerStore
}

func (c *brokenLedgerCollection) InsertOne(ctx context.Context, document any) error {
	if c.store.fail {
		return errLedgerDown
	}

	return c.Collection.InsertOne(ctx, document)
}

func setupServices(t *testing.T) (*service.Services, *brokenLedgerStore) {
	t.Helper()

	s := &brokenLedgerStore{inner: store.NewMemory()}

	return service.New(s), s
}

func auditCount(t *testing.T, svcs *service.Services) int {
	t.Helper()

	all, err := svcs.Audits.FindAll(context.Background())
	require.NoError(t, err)

	return len(all)
}

func lastAudit(t *testing.T, svcs *service.Services) models.Audit {
	t.Helper()

	all, err := svcs.Audits.FindAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, all)

	return all[len(all)-1]
}

func TestEveryUserOperationWritesOneAudit(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	user := models.NewUser("alice", "alice@example.com", "Alice", "Doe", "hash", nil)

	steps := []struct {
		name         string
		run          func() error
		action       models.Action
		resourceID   string
		resourceVec  models.ResourceIDType
		resourceType models.ResourceType
	}{
		{
			name:         "create",
			run:          func() error { _, err := svcs.Users.Create(ctx, "actor", user); return err },
			action:       models.ActionCreate,
			resourceID:   user.ID,
			resourceVec:  models.ResourceIDSingle,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "find all",
			run:          func() error { _, err := svcs.Users.FindAll(ctx, "actor"); return err },
			action:       models.ActionRead,
			resourceID:   "",
			resourceVec:  models.ResourceIDNone,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "find by id",
			run:          func() error { _, err := svcs.Users.FindByID(ctx, "actor", user.ID); return err },
			action:       models.ActionRead,
			resourceID:   user.ID,
			resourceVec:  models.ResourceIDSingle,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "find by username",
			run:          func() error { _, err := svcs.Users.FindByUsername(ctx, "actor", "alice"); return err },
			action:       models.ActionRead,
			resourceID:   "alice",
			resourceVec:  models.ResourceIDName,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "find by email",
			run:          func() error { _, err := svcs.Users.FindByEmail(ctx, "actor", "alice@example.com"); return err },
			action:       models.ActionRead,
			resourceID:   "alice@example.com",
			resourceVec:  models.ResourceIDName,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "find by id vec",
			run:          func() error { _, err := svcs.Users.FindByIDVec(ctx, "actor", []string{user.ID, "other"}); return err },
			action:       models.ActionRead,
			resourceID:   user.ID + ",other",
			resourceVec:  models.ResourceIDVec,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "update",
			run:          func() error { _, err := svcs.Users.Update(ctx, "actor", user); return err },
			action:       models.ActionUpdate,
			resourceID:   user.ID,
			resourceVec:  models.ResourceIDSingle,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "search",
			run:          func() error { _, err := svcs.Users.Search(ctx, "actor", "ali"); return err },
			action:       models.ActionSearch,
			resourceID:   "ali",
			resourceVec:  models.ResourceIDText,
			resourceType: models.ResourceTypeUser,
		},
		{
			name:         "delete",
			run:          func() error { return svcs.Users.Delete(ctx, "actor", user.ID) },
			action:       models.ActionDelete,
			resourceID:   user.ID,
			resourceVec:  models.ResourceIDSingle,
			resourceType: models.ResourceTypeUser,
		},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			before := auditCount(t, svcs)

			require.NoError(t, step.run())

			assert.Equal(t, before+1, auditCount(t, svcs), "exactly one audit per operation")

			audit := lastAudit(t, svcs)
			assert.Equal(t, "actor", audit.UserID)
			assert.Equal(t, step.action, audit.Action)
			assert.Equal(t, step.resourceID, audit.ResourceID)
			assert.Equal(t, step.resourceVec, audit.ResourceIDType)
			assert.Equal(t, step.resourceType, audit.ResourceType)
		})
	}
}

func TestFailedOperationStillAudited(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	before := auditCount(t, svcs)

	// the lookup fails, but the intent was still recorded first
	_, err := svcs.Users.FindByID(ctx, "actor", "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.Equal(t, before+1, auditCount(t, svcs))
}

func TestAuditFailureDeniesWrites(t *testing.T) {
	svcs, ledger := setupServices(t)
	ctx := context.Background()

	user := models.NewUser("alice", "alice@example.com", "Alice", "Doe", "hash", nil)

	ledger.fail = true

	_, err := svcs.Users.Create(ctx, "actor", user)
	require.ErrorIs(t, err, service.ErrAuditDenied)

	ledger.fail = false

	// fail-closed: the denied create left no trace in the store
	users, err := svcs.Users.FindAll(ctx, "actor")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuditFailureDeniesReads(t *testing.T) {
	svcs, ledger := setupServices(t)
	ctx := context.Background()

	_, err := svcs.Roles.Create(ctx, "actor", models.NewRole("ADMIN", nil))
	require.NoError(t, err)

	ledger.fail = true

	_, err = svcs.Roles.FindAll(ctx, "actor")
	assert.ErrorIs(t, err, service.ErrAuditDenied)

	_, err = svcs.Roles.FindByName(ctx, "actor", "ADMIN")
	assert.ErrorIs(t, err, service.ErrAuditDenied)

	_, err = svcs.Permissions.Search(ctx, "actor", "x")
	assert.ErrorIs(t, err, service.ErrAuditDenied)
}

func TestPermissionDeleteDetachesFromRoles(t *testing.T) {
	svcs, _ := setupServices(t)
	ctx := context.Background()

	permission, err := svcs.Permissions.Create(ctx, "actor", models.NewPermission("CAN_READ_USERS", ""))
	require.NoError(t, err)

	role, err := svcs.Roles.Create(ctx, "actor", models.NewRole("ADMIN", []string{permission.ID}))
	require.NoError(t, err)

	before := auditCount(t, svcs)

	require.NoError(t, svcs.Permissions.Delete(ctx, "actor", permission.ID, svcs.Roles))

	// one audit for the delete; the cascade is part of the same operation
	assert.Equal(t, before+1, auditCount(t, svcs))

	got, err := svcs.Roles.FindByID(ctx, "actor", role.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Permissions)

	_, err = svcs.Permissions.FindByID(ctx, "actor", permission.ID)
	assert.ErrorIs(t, err, repository.ErrPermissionNotFound)
}

func TestPermissionDeleteDeniedLeavesRolesIntact(t *testing.T) {
	svcs, ledger := setupServices(t)
	ctx := context.Background()

	permission, err := svcs.Permissions.Create(ctx, "actor", models.NewPermission("CAN_READ_USERS", ""))
	require.NoError(t, err)

	role, err := svcs.Roles.Create(ctx, "actor", models.NewRole("ADMIN", []string{permission.ID}))
	require.NoError(t, err)

	ledger.fail = true
	err = svcs.Permissions.Delete(ctx, "actor", permission.ID, svcs.Roles)
	require.ErrorIs(t, err, service.ErrAuditDenied)
	ledger.fail = false

	got, err := svcs.Roles.FindByID(ctx, "actor", role.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{permission.ID}, got.Permissions)
}
