package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBRepository implements Repository on a goleveldb database. LevelDB
// has no context support, so cancellation is only checked before each call.
type LevelDBRepository struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) the database directory at path.
func OpenLevelDB(path string) (*LevelDBRepository, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &LevelDBRepository{db: db}, nil
}

func NewLevelDBRepository(db *leveldb.DB) *LevelDBRepository {
	return &LevelDBRepository{db: db}
}

func (r *LevelDBRepository) Close() error {
	return r.db.Close()
}

func (r *LevelDBRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := r.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return v, nil
}

func (r *LevelDBRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", key, err)
	}
	return nil
}

func (r *LevelDBRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	for k, v := range values {
		batch.Put([]byte(k), v)
	}
	if err := r.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to set %d storage keys: %w", len(values), err)
	}
	return nil
}

func (r *LevelDBRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}

func (r *LevelDBRepository) List(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	iter := r.db.NewIterator(nil, nil)
	defer iter.Release()

	result := make(map[string][]byte)
	for iter.Next() {
		// the iterator reuses its buffers
		v := make([]byte, len(iter.Value()))
		copy(v, iter.Value())
		result[string(iter.Key())] = v
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate storage: %w", err)
	}
	return result, nil
}

func (r *LevelDBRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	iter := r.db.NewIterator(nil, nil)
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to iterate storage: %w", err)
	}
	if err := r.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}
