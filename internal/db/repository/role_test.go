package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

func setupRoleRepo(t *testing.T) *RoleRepository {
	t.Helper()

	return NewRoleRepository(store.NewMemory())
}

func TestRoleCreate(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewRole("ADMIN", []string{"p1", "p2"}))
	require.NoError(t, err)

	assert.Equal(t, "ADMIN", created.Name)
	assert.Equal(t, []string{"p1", "p2"}, created.Permissions)

	_, err = repo.Create(ctx, models.NewRole("", nil))
	assert.ErrorIs(t, err, ErrRoleNameEmpty)

	_, err = repo.Create(ctx, models.NewRole("ADMIN", nil))
	assert.ErrorIs(t, err, ErrRoleNameTaken)
}

func TestRoleFind(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewRole("ADMIN", nil))
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byName, err := repo.FindByName(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.FindByName(ctx, "MISSING")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	_, err = repo.FindByIDVec(ctx, nil)
	assert.ErrorIs(t, err, ErrIDListEmpty)

	roles, err := repo.FindByIDVec(ctx, []string{created.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestRoleUpdate(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewRole("STAFF", nil))
	require.NoError(t, err)

	created.Permissions = []string{"p1"}

	updated, err := repo.Update(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, updated.Permissions)

	// keeping its own name is not a collision
	_, err = repo.Update(ctx, *created)
	require.NoError(t, err)

	other, err := repo.Create(ctx, models.NewRole("OTHER", nil))
	require.NoError(t, err)

	other.Name = "STAFF"
	_, err = repo.Update(ctx, *other)
	assert.ErrorIs(t, err, ErrRoleNameTaken)

	ghost := models.NewRole("GHOST", nil)
	_, err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRoleDelete(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewRole("ADMIN", nil))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRoleNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
}

func TestRoleSearch(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.NewRole("ADMIN", nil))
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.NewRole("ADMIN_READONLY", nil))
	require.NoError(t, err)

	roles, err := repo.Search(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	roles, err = repo.Search(ctx, "readonly")
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestRoleDetachPermission(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.NewRole("FIRST", []string{"p1", "p2"}))
	require.NoError(t, err)

	second, err := repo.Create(ctx, models.NewRole("SECOND", []string{"p2"}))
	require.NoError(t, err)

	third, err := repo.Create(ctx, models.NewRole("THIRD", []string{"p3"}))
	require.NoError(t, err)

	require.NoError(t, repo.DetachPermission(ctx, "p2"))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, got.Permissions)

	got, err = repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Permissions)

	// unrelated roles stay untouched
	got, err = repo.FindByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, got.Permissions)

	// detaching an unreferenced id is a no-op
	require.NoError(t, repo.DetachPermission(ctx, "p2"))

	assert.ErrorIs(t, repo.DetachPermission(ctx, ""), ErrPermissionIDEmpty)
}

func TestRoleDetachPermissionAfterUpdate(t *testing.T) {
	repo := setupRoleRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewRole("STAFF", []string{"p1", "p2"}))
	require.NoError(t, err)

	created.Name = "STAFF_RENAMED"

	_, err = repo.Update(ctx, *created)
	require.NoError(t, err)

	// detach must still reach roles whose document has been rewritten
	require.NoError(t, repo.DetachPermission(ctx, "p1"))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, got.Permissions)
}
