package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned by lookups that match no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is matched by every UniqueViolationError
	ErrDuplicate = errors.New("duplicate value")
)

const pgUniqueViolation = "23505"

// UniqueViolationError reports an insert rejected by a UNIQUE column
type UniqueViolationError struct {
	Table string
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s.%s already exists", e.Table, e.Field)
}

func (e *UniqueViolationError) Is(target error) bool {
	return target == ErrDuplicate
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// translateError maps driver errors onto the package's error values
func translateError(table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		// "UNIQUE constraint failed: user.username"
		msg := sqliteErr.Error()
		field := msg[strings.LastIndex(msg, ".")+1:]
		return &UniqueViolationError{Table: table, Field: field, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		field := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, table+"_"), "_key")
		return &UniqueViolationError{Table: table, Field: field, Err: err}
	}

	return err
}
