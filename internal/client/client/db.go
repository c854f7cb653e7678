package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/nursenotes/internal/client/migrations"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Supported values of the storage backend setting.
const (
	BackendSQLite  = "sqlite"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens dsn and migrates it. The pool is limited to one
// connection: SQLite serializes writers anyway and ":memory:" databases are
// per connection.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitStorage opens the key-value repository for backend at path. The
// returned closer releases the underlying database.
func InitStorage(ctx context.Context, backend, path string) (storage.Repository, io.Closer, error) {
	switch backend {
	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLiteRepository(db), db, nil

	case BackendLevelDB:
		r, err := storage.OpenLevelDB(path)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil

	case BackendMemory:
		return storage.NewMemoryRepository(), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
