// Package repomanager vends repository implementations bound to a storage
// handle and owns that handle's lifecycle: migrations, transactions,
// health pings and shutdown.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn returns the non-transactional handle for single-statement work.
	Conn() dbx.DBTX
	// RunInTx runs fn inside one transaction, committing when fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Ping(ctx context.Context) error
	Close() error

	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
