package repositories

import (
	"errors"

	"valleycars/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

type scanner interface {
	Scan(dest ...any) error
}

// mapWriteError turns a duplicate-key failure into a conflict and anything else into an internal error.
func mapWriteError(resource string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	}
	return domain.InternalError{Msg: "failed to save " + resource, Err: err}
}
