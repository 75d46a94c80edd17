package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const pgForeignKeyViolation = "23503"

// IsForeignKeyViolation reports a foreign key violation from either backend.
func IsForeignKeyViolation(err error) bool {
	if pgCode(err) == pgForeignKeyViolation {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
