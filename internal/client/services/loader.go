package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
)

// loadJSON reads key and decodes it into T. An absent key yields the zero
// value. Undecodable content also yields the zero value, with corrupt set to
// true and a warning logged.
func loadJSON[T any](ctx context.Context, repo storage.Repository, log logging.Logger, key string) (value T, corrupt bool, err error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return value, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if raw == nil {
		return value, false, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn(ctx, "stored value is corrupt, using default", "key", key, "corrupt", true, "error", err)
		return value, true, nil
	}
	return v, false, nil
}

func storeJSON(ctx context.Context, repo storage.Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
