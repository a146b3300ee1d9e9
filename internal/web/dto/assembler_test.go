package dto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

func setupAssembler(t *testing.T) (*Assembler, *service.Services) {
	t.Helper()

	svcs := service.New(store.NewMemory())

	return NewAssembler(svcs.Roles, svcs.Permissions), svcs
}

func TestAssembleUserFullGraph(t *testing.T) {
	assembler, svcs := setupAssembler(t)
	ctx := context.Background()

	readUsers, err := svcs.Permissions.Create(ctx, service.SystemActor,
		models.NewPermission("CAN_READ_USERS", "list and read user accounts"))
	require.NoError(t, err)

	updateUsers, err := svcs.Permissions.Create(ctx, service.SystemActor,
		models.NewPermission("CAN_UPDATE_USERS", "modify user accounts"))
	require.NoError(t, err)

	admin, err := svcs.Roles.Create(ctx, service.SystemActor,
		models.NewRole("ADMIN", []string{readUsers.ID, updateUsers.ID}))
	require.NoError(t, err)

	// a role without permissions must still assemble, with an empty list
	guest, err := svcs.Roles.Create(ctx, service.SystemActor,
		models.NewRole("GUEST", nil))
	require.NoError(t, err)

	user := models.NewUser("alice", "alice@example.com", "Alice", "Doe", "hash",
		[]string{admin.ID, guest.ID})

	response, err := assembler.AssembleUser(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, "alice", response.Username)
	assert.Equal(t, "alice@example.com", response.Email)
	assert.True(t, response.Enabled)

	require.Len(t, response.Roles, 2)

	byName := map[string]RoleResponse{}
	for _, role := range response.Roles {
		byName[role.Name] = role
	}

	require.Contains(t, byName, "ADMIN")
	require.Contains(t, byName, "GUEST")

	assert.Len(t, byName["ADMIN"].Permissions, 2)
	assert.NotNil(t, byName["GUEST"].Permissions)
	assert.Empty(t, byName["GUEST"].Permissions)

	names := map[string]bool{}
	for _, p := range byName["ADMIN"].Permissions {
		names[p.Name] = true
	}

	assert.True(t, names["CAN_READ_USERS"])
	assert.True(t, names["CAN_UPDATE_USERS"])
}

func TestAssembleUserWithoutRoles(t *testing.T) {
	assembler, _ := setupAssembler(t)

	user := models.NewUser("bob", "bob@example.com", "Bob", "Doe", "hash", nil)

	response, err := assembler.AssembleUser(context.Background(), user)
	require.NoError(t, err)

	assert.NotNil(t, response.Roles)
	assert.Empty(t, response.Roles)
}

func TestAssembleUserSkipsDanglingRoleIDs(t *testing.T) {
	assembler, svcs := setupAssembler(t)
	ctx := context.Background()

	role, err := svcs.Roles.Create(ctx, service.SystemActor, models.NewRole("STAFF", nil))
	require.NoError(t, err)

	user := models.NewUser("carol", "carol@example.com", "Carol", "Doe", "hash",
		[]string{role.ID, "no-such-role"})

	response, err := assembler.AssembleUser(ctx, user)
	require.NoError(t, err)

	require.Len(t, response.Roles, 1)
	assert.Equal(t, "STAFF", response.Roles[0].Name)
}

func TestAssembleUserHidesPassword(t *testing.T) {
	assembler, _ := setupAssembler(t)

	user := models.NewUser("dave", "dave@example.com", "Dave", "Doe", "secret-hash", nil)

	response, err := assembler.AssembleUser(context.Background(), user)
	require.NoError(t, err)

	// the response type has no password field at all; make sure the rest of
	// the identity came through
	assert.Equal(t, user.CreatedAt, response.CreatedAt)
	assert.Equal(t, user.UpdatedAt, response.UpdatedAt)
}

func TestAssembleUserRecordsAuditTrail(t *testing.T) {
	assembler, svcs := setupAssembler(t)
	ctx := context.Background()

	role, err := svcs.Roles.Create(ctx, service.SystemActor, models.NewRole("AUDITED", nil))
	require.NoError(t, err)

	user := models.NewUser("erin", "erin@example.com", "Erin", "Doe", "hash",
		[]string{role.ID})

	before, err := svcs.Audits.FindAll(ctx)
	require.NoError(t, err)

	_, err = assembler.AssembleUser(ctx, user)
	require.NoError(t, err)

	after, err := svcs.Audits.FindAll(ctx)
	require.NoError(t, err)

	// one read for the role id vector, nothing for the empty permission list
	require.Len(t, after, len(before)+1)

	last := after[len(after)-1]
	assert.Equal(t, user.ID, last.UserID)
	assert.Equal(t, models.ActionRead, last.Action)
	assert.Equal(t, models.ResourceTypeRole, last.ResourceType)
}
