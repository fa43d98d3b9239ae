package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names, as registered with database/sql
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_postgres.sql
var postgresSchema string

// Store is the forum repository over the user, topic and message tables
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database and creates the tables if they are absent.
// SQLite is limited to a single connection since it only allows one writer.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	schema, err := schemaFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("Database initialized successfully", zap.String("driver", driver))
	return &Store{db: db, driver: driver}, nil
}

func schemaFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return sqliteSchema, nil
	case DriverPostgres:
		return postgresSchema, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// ErrMigrationsUnsupported is returned by Migrate on drivers other than sqlite3.
// go-utils migrations bind their bookkeeping queries with "?".
var ErrMigrationsUnsupported = errors.New("migrations are only supported on the sqlite3 driver")

// Migrate runs the .sql migrations found in dir on top of the base schema
func (s *Store) Migrate(dir string) error {
	if s.driver != DriverSQLite {
		return ErrMigrationsUnsupported
	}
	if err := migrations.Migrate(s.db, dir); err != nil {
		return fmt.Errorf("failed to run migrations from %s: %w", dir, err)
	}
	return nil
}

// DB exposes the underlying handle, used by the sqlite session store
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Driver returns the database/sql driver name the store was opened with
func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind converts ? placeholders to the driver's bindvar style
func (s *Store) rebind(query string) string {
	return s.db.Rebind(query)
}
