// Package tasks stores task rows. Ownership rules live in the service layer;
// the repository only reads and writes by id or owner.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByOwner returns the owner's tasks in creation order.
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}
