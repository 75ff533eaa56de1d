// Package services contains server-side business logic: account
// registration and login (UserService) and owner-scoped task management
// (TaskService). Services translate storage failures into the shared
// sentinels from internal/common.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// withQueryTimeout bounds a service call by d. A non-positive d only adds
// cancellation.
func withQueryTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// storageError maps an unexpected repository error to ErrorTransient or
// ErrorInternal, keeping the cause in the message for logs.
func storageError(err error) error {
	if errors.Is(err, common.ErrorTransient) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrorTransient, err)
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
