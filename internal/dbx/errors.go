package dbx

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	stringTooLong       = "22001"
)

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsForeignKeyViolation reports whether err references a row that does not
// exist, e.g. a task whose owner was deleted.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

// IsTransient reports whether err is a storage failure the caller may retry:
// deadlines, dropped or refused connections and pgx connect/timeout errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify maps a raw driver error onto the shared sentinels so services can
// branch with errors.Is. The original error stays in the chain.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return errors.Join(common.ErrorAlreadyExists, err)
	case IsForeignKeyViolation(err):
		return errors.Join(common.ErrorNotFound, err)
	case hasCode(err, stringTooLong):
		return errors.Join(common.ErrorValidation, err)
	case IsTransient(err):
		return errors.Join(common.ErrorTransient, err)
	default:
		return err
	}
}
