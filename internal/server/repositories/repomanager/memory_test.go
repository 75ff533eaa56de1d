package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryManager_SharesStores(t *testing.T) {
	ctx := context.Background()
	var m RepositoryManager = NewMemoryRepositoryManager()

	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.Ping(ctx))

	u, err := m.Users(m.Conn()).Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	err = m.RunInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := m.Tasks(tx).Create(ctx, &models.Task{UserID: u.ID, Description: "abc", Priority: models.PriorityBaixa})
		return err
	})
	require.NoError(t, err)

	list, err := m.Tasks(m.Conn()).ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mm := m.(*MemoryRepositoryManager)
	assert.Equal(t, 1, mm.UserCount())
	assert.Equal(t, 1, mm.TaskCount())
	assert.NoError(t, m.Close())
}

func TestMemoryRepositoryManager_RunInTxPropagatesError(t *testing.T) {
	m := NewMemoryRepositoryManager()
	boom := errors.New("boom")

	err := m.RunInTx(context.Background(), func(context.Context, dbx.DBTX) error { return boom })
	assert.ErrorIs(t, err, boom)
}
