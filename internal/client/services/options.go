package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/nursenotes/internal/client/models"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/common"
	"github.com/dmitrijs2005/nursenotes/internal/filex"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
)

// AddResult tells whether Add changed the list.
type AddResult int

const (
	Rejected AddResult = iota
	Added
)

func (r AddResult) String() string {
	if r == Added {
		return "added"
	}
	return "rejected"
}

// RemoveResult tells whether RemoveSelected changed the list.
type RemoveResult int

const (
	NoOp RemoveResult = iota
	Removed
)

func (r RemoveResult) String() string {
	if r == Removed {
		return "removed"
	}
	return "no-op"
}

// NoSelection is the index meaning nothing is selected.
const NoSelection = -1

type OptionService interface {
	// Add appends the trimmed value unless it is empty or already present.
	Add(ctx context.Context, c models.Category, raw string) (AddResult, error)
	// RemoveSelected removes the value at index; out-of-range indexes,
	// including NoSelection, are a no-op.
	RemoveSelected(ctx context.Context, c models.Category, index int) (RemoveResult, error)
	LoadAll(ctx context.Context, c models.Category) ([]string, error)
	// ExportBundle encodes all four lists as one JSON object.
	ExportBundle(ctx context.Context) ([]byte, error)
	// Export writes ExportBundle to dropdown_data.json in dir.
	Export(ctx context.Context, dir string) (string, error)
	// ImportBundle replaces every category present in raw. Nothing is
	// written unless the whole bundle is valid. It returns all four lists
	// as stored afterwards.
	ImportBundle(ctx context.Context, raw []byte) (models.Bundle, error)
}

type optionService struct {
	repo storage.Repository
	log  logging.Logger
}

func NewOptionService(repo storage.Repository, log logging.Logger) OptionService {
	return &optionService{repo: repo, log: log.With("component", "options")}
}

func checkCategory(c models.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, string(c))
	}
	return nil
}

func (s *optionService) load(ctx context.Context, c models.Category) ([]string, error) {
	values, _, err := loadJSON[[]string](ctx, s.repo, s.log, string(c))
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *optionService) LoadAll(ctx context.Context, c models.Category) ([]string, error) {
	if err := checkCategory(c); err != nil {
		return nil, err
	}
	return s.load(ctx, c)
}

func (s *optionService) Add(ctx context.Context, c models.Category, raw string) (AddResult, error) {
	if err := checkCategory(c); err != nil {
		return Rejected, err
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return Rejected, nil
	}

	values, err := s.load(ctx, c)
	if err != nil {
		return Rejected, err
	}
	if slices.Contains(values, value) {
		s.log.Debug(ctx, "duplicate option rejected", "category", c, "value", value)
		return Rejected, nil
	}

	values = append(values, value)
	if err := storeJSON(ctx, s.repo, string(c), values); err != nil {
		return Rejected, err
	}
	return Added, nil
}

func (s *optionService) RemoveSelected(ctx context.Context, c models.Category, index int) (RemoveResult, error) {
	if err := checkCategory(c); err != nil {
		return NoOp, err
	}

	values, err := s.load(ctx, c)
	if err != nil {
		return NoOp, err
	}
	if index < 0 || index >= len(values) {
		return NoOp, nil
	}

	values = slices.Delete(values, index, index+1)
	if err := storeJSON(ctx, s.repo, string(c), values); err != nil {
		return NoOp, err
	}
	return Removed, nil
}

func (s *optionService) bundle(ctx context.Context) (models.Bundle, error) {
	b := make(models.Bundle, len(models.Categories))
	for _, c := range models.Categories {
		values, err := s.load(ctx, c)
		if err != nil {
			return nil, err
		}
		b[c] = values
	}
	return b, nil
}

func (s *optionService) ExportBundle(ctx context.Context) ([]byte, error) {
	b, err := s.bundle(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}
	return raw, nil
}

func (s *optionService) Export(ctx context.Context, dir string) (string, error) {
	raw, err := s.ExportBundle(ctx)
	if err != nil {
		return "", err
	}
	path, err := filex.WriteFileAtomic(dir, common.BundleExportName, raw)
	if err != nil {
		return "", fmt.Errorf("failed to export options: %w", err)
	}
	s.log.Info(ctx, "options exported", "path", path)
	return path, nil
}

// normalize applies the list invariant to imported values: trimmed,
// non-empty, first occurrence wins.
func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseBundle(raw []byte) (models.Bundle, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, fmt.Errorf("%w: top level must be an object", common.ErrInvalidBundle)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidBundle, err)
	}

	b := make(models.Bundle)
	var unknown []string
	for key, value := range top {
		c := models.Category(key)
		if !c.Valid() {
			unknown = append(unknown, key)
			continue
		}
		var values []string
		if err := json.Unmarshal(value, &values); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidBundle, key, err)
		}
		b[c] = normalize(values)
	}
	slices.Sort(unknown)
	return b, unknown, nil
}

func (s *optionService) ImportBundle(ctx context.Context, raw []byte) (models.Bundle, error) {
	b, unknown, err := parseBundle(raw)
	if err != nil {
		s.log.Warn(ctx, "bundle rejected", "error", err)
		return nil, err
	}
	if len(unknown) > 0 {
		s.log.Warn(ctx, "ignoring unknown bundle keys", "keys", unknown)
	}

	writes := make(map[string][]byte, len(b))
	for c, values := range b {
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", c, err)
		}
		writes[string(c)] = encoded
	}
	if err := s.repo.SetMany(ctx, writes); err != nil {
		return nil, fmt.Errorf("failed to import bundle: %w", err)
	}

	s.log.Info(ctx, "bundle imported", "categories", len(writes))
	return s.bundle(ctx)
}
