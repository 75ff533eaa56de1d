package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager serves process-local repositories. The DBTX
// arguments are ignored. Transactions are serialized against each other
// but are not rolled back on error, so callers keep writes last.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	users *users.MemoryRepository
	tasks *tasks.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		tasks: tasks.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Conn() dbx.DBTX {
	return nil
}

func (m *MemoryRepositoryManager) RunInTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Tasks(dbx.DBTX) tasks.Repository {
	return m.tasks
}

// UserCount and TaskCount expose store sizes for tests and diagnostics.
func (m *MemoryRepositoryManager) UserCount() int { return m.users.Len() }

func (m *MemoryRepositoryManager) TaskCount() int { return m.tasks.Len() }
