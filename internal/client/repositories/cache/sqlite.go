package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/nursenotes/internal/dbx"
)

const (
	createCacheQuery = `INSERT INTO caches (name) VALUES (?) ON CONFLICT(name) DO NOTHING`
	upsertEntryQuery = `
		INSERT INTO cache_entries (cache_name, key, status, header, body) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_name, key) DO UPDATE SET
			status = excluded.status,
			header = excluded.header,
			body   = excluded.body
	`
)

// SQLiteStorage keeps caches in the caches and cache_entries tables.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Match(ctx context.Context, name, key string) (*Response, bool, error) {
	var (
		status int
		header string
		body   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT status, header, body FROM cache_entries WHERE cache_name = ? AND key = ?`,
		name, key).Scan(&status, &header, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to match %s in cache %s: %w", key, name, err)
	}

	h := http.Header{}
	if err := json.Unmarshal([]byte(header), &h); err != nil {
		return nil, false, fmt.Errorf("failed to decode headers of %s in cache %s: %w", key, name, err)
	}
	if body == nil {
		body = []byte{}
	}
	return &Response{Status: status, Header: h, Body: body}, true, nil
}

func putEntry(ctx context.Context, db dbx.DBTX, name, key string, resp *Response) error {
	header, err := json.Marshal(resp.Header)
	if err != nil {
		return fmt.Errorf("failed to encode headers of %s: %w", key, err)
	}
	if resp.Header == nil {
		header = []byte("{}")
	}
	body := resp.Body
	if body == nil {
		body = []byte{}
	}
	if _, err := db.ExecContext(ctx, upsertEntryQuery, name, key, resp.Status, string(header), body); err != nil {
		return fmt.Errorf("failed to put %s in cache %s: %w", key, name, err)
	}
	return nil
}

func (s *SQLiteStorage) Put(ctx context.Context, name, key string, resp *Response) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, createCacheQuery, name); err != nil {
			return fmt.Errorf("failed to create cache %s: %w", name, err)
		}
		return putEntry(ctx, tx, name, key, resp)
	})
}

func (s *SQLiteStorage) PutAll(ctx context.Context, name string, entries map[string]*Response) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, createCacheQuery, name); err != nil {
			return fmt.Errorf("failed to create cache %s: %w", name, err)
		}
		for key, resp := range entries {
			if err := putEntry(ctx, tx, name, key, resp); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Has(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM caches WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up cache %s: %w", name, err)
	}
	return n > 0, nil
}

func (s *SQLiteStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM caches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list caches: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan cache name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate caches: %w", err)
	}
	return names, nil
}

// Delete removes the entries explicitly; foreign keys are off by default in
// SQLite so ON DELETE CASCADE can't be relied on.
func (s *SQLiteStorage) Delete(ctx context.Context, name string) (bool, error) {
	var existed bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_name = ?`, name); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM caches WHERE name = ?`, name)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		existed = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete cache %s: %w", name, err)
	}
	return existed, nil
}

func (s *SQLiteStorage) Count(ctx context.Context, name string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries WHERE cache_name = ?`, name).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache %s: %w", name, err)
	}
	return n, nil
}
