package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nursenotes/internal/client/models"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/common"
	"github.com/dmitrijs2005/nursenotes/internal/confirm"
	"github.com/dmitrijs2005/nursenotes/internal/filex"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type NoteService interface {
	Append(ctx context.Context, note models.Note) error
	LoadAll(ctx context.Context) ([]models.Note, error)
	// ClearAll deletes every note. It refuses unless token was granted.
	ClearAll(ctx context.Context, token confirm.Token) error
	ExportText(ctx context.Context) ([]byte, error)
	// Export writes ExportText to nurse_notes_<date>.txt in dir and returns
	// the file path.
	Export(ctx context.Context, dir string, now time.Time) (string, error)
	// Filter returns the notes for which expression evaluates to true.
	// Fields are referenced by their JSON names, for example
	// `patientName == "J. Doe" && activity == "Vitals"`.
	Filter(ctx context.Context, expression string) ([]models.Note, error)
}

type noteService struct {
	repo storage.Repository
	log  logging.Logger
}

func NewNoteService(repo storage.Repository, log logging.Logger) NoteService {
	return &noteService{repo: repo, log: log.With("component", "notes")}
}

// Format renders n as a single export line.
func Format(n models.Note) string {
	return n.Line()
}

func (s *noteService) load(ctx context.Context) ([]models.Note, error) {
	notes, _, err := loadJSON[[]models.Note](ctx, s.repo, s.log, common.NotesStorageKey)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *noteService) Append(ctx context.Context, note models.Note) error {
	notes, err := s.load(ctx)
	if err != nil {
		return err
	}

	notes = append(notes, note)
	if err := storeJSON(ctx, s.repo, common.NotesStorageKey, notes); err != nil {
		return err
	}

	s.log.Info(ctx, "note appended", "count", len(notes))
	return nil
}

func (s *noteService) LoadAll(ctx context.Context) ([]models.Note, error) {
	return s.load(ctx)
}

func (s *noteService) ClearAll(ctx context.Context, token confirm.Token) error {
	if err := confirm.Require(token); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, common.NotesStorageKey); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	s.log.Info(ctx, "notes cleared")
	return nil
}

func (s *noteService) ExportText(ctx context.Context) ([]byte, error) {
	notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, Format(n))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func (s *noteService) Export(ctx context.Context, dir string, now time.Time) (string, error) {
	text, err := s.ExportText(ctx)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", common.NotesExportBaseName, now.Format(models.DateLayout))
	path, err := filex.WriteFileAtomic(dir, name, text)
	if err != nil {
		return "", fmt.Errorf("failed to export notes: %w", err)
	}

	s.log.Info(ctx, "notes exported", "path", path)
	return path, nil
}

func compileFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(models.Note{}.Fields()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFilter, err)
	}
	return program, nil
}

func (s *noteService) Filter(ctx context.Context, expression string) ([]models.Note, error) {
	if strings.TrimSpace(expression) == "" {
		return s.load(ctx)
	}

	program, err := compileFilter(expression)
	if err != nil {
		return nil, err
	}

	notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		out, err := expr.Run(program, n.Fields())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidFilter, err)
		}
		if ok, _ := out.(bool); ok {
			matched = append(matched, n)
		}
	}
	return matched, nil
}
