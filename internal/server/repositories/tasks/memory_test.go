package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a1, err := r.Create(ctx, &models.Task{UserID: 1, Description: "first", Priority: models.PriorityBaixa})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Task{UserID: 2, Description: "other", Priority: models.PriorityAlta})
	require.NoError(t, err)
	a2, err := r.Create(ctx, &models.Task{UserID: 1, Description: "second", Priority: models.PriorityMedia})
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a1.ID, list[0].ID)
	assert.Equal(t, a2.ID, list[1].ID)

	a1.Completed = true
	a1.UserID = 99
	updated, err := r.Update(ctx, a1)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, int64(1), updated.UserID, "owner is never transferable")

	require.NoError(t, r.Delete(ctx, a1.ID))
	assert.True(t, errors.Is(r.Delete(ctx, a1.ID), common.ErrorNotFound))

	_, err = r.Get(ctx, a1.ID)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Equal(t, 2, r.Len())
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewMemoryRepository()
	_, err := r.Create(ctx, &models.Task{UserID: 1, Description: "abc"})
	assert.ErrorIs(t, err, context.Canceled)
}
