// Package logging is the structured logger used across taskkeeper.
package logging

import "context"

// Logger logs a message with alternating key/value attributes:
//
//	logger.Info(ctx, "task created", "task_id", id, "user_id", ownerID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every entry.
	With(args ...any) Logger
}
