package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

func TestAuditCreateAndFindAll(t *testing.T) {
	repo := NewAuditRepository(store.NewMemory())
	ctx := context.Background()

	first := models.NewAudit("actor", models.ActionCreate, "r1", models.ResourceIDSingle, models.ResourceTypeUser)
	second := models.NewAudit("actor", models.ActionSearch, "alice", models.ResourceIDText, models.ResourceTypeUser)

	created, err := repo.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first.ID, created.ID)

	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// insertion order is preserved
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, models.ActionCreate, all[0].Action)
	assert.Equal(t, models.ResourceIDText, all[1].ResourceIDType)
}
