package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nursenotes/internal/client/models"
	"github.com/dmitrijs2005/nursenotes/internal/client/services"
	"github.com/dmitrijs2005/nursenotes/internal/common"
)

// AddNote walks through the note form and saves the result.
func (a *App) AddNote(ctx context.Context) error {
	note := models.NewNote(a.now())

	var err error
	if note.Date, err = GetTextWithDefault(a.reader, "- Date (YYYY-MM-DD)", note.Date, a.out); err != nil {
		return err
	}
	if note.Time, err = GetTextWithDefault(a.reader, "- Time (HH:MM)", note.Time, a.out); err != nil {
		return err
	}

	for _, c := range models.Categories {
		values, err := a.optionService.LoadAll(ctx, c)
		if err != nil {
			a.log.Error(ctx, "failed to load options", "category", c, "error", err)
			return err
		}

		if len(values) > 0 {
			i, err := GetChoice(a.reader, "- "+c.Label(), values, a.out)
			if err != nil {
				return err
			}
			if i >= 0 {
				note.Select(c, values[i])
			}
		} else {
			a.printf("- %s: no options yet (use addopt)\n", c.Label())
		}

		details, err := GetSimpleText(a.reader, "- "+c.Label()+" details", a.out)
		if err != nil {
			return err
		}
		note.SetDetails(c, details)
	}

	if note.AdditionalNotes, err = GetMultiline(a.reader, "- Additional notes", a.out); err != nil {
		return err
	}

	if err := a.noteService.Append(ctx, note); err != nil {
		a.log.Error(ctx, "failed to save note", "error", err)
		a.println("Error saving note:", err)
		return err
	}
	a.println("Note saved.")
	return nil
}

func (a *App) printNotes(notes []models.Note) {
	if len(notes) == 0 {
		a.println("No notes.")
		return
	}
	for _, n := range notes {
		a.println(services.Format(n))
	}
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.noteService.LoadAll(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to load notes", "error", err)
		return err
	}
	a.printNotes(notes)
	return nil
}

func (a *App) Find(ctx context.Context, expression string) error {
	notes, err := a.noteService.Filter(ctx, expression)
	if err != nil {
		if errors.Is(err, common.ErrInvalidFilter) {
			a.println(err)
		} else {
			a.log.Error(ctx, "failed to filter notes", "error", err)
		}
		return err
	}
	a.printNotes(notes)
	return nil
}

func (a *App) ExportNotes(ctx context.Context) error {
	path, err := a.noteService.Export(ctx, a.config.ExportDir, a.now())
	if err != nil {
		a.log.Error(ctx, "failed to export notes", "error", err)
		a.println("Export failed:", err)
		return err
	}
	a.println("Notes exported to", path)
	return nil
}

func (a *App) ClearNotes(ctx context.Context) error {
	tok, err := a.confirm(ctx, "Clear all notes? This cannot be undone.")
	if err != nil {
		return err
	}

	err = a.noteService.ClearAll(ctx, tok)
	switch {
	case errors.Is(err, common.ErrNotConfirmed):
		a.println("Cancelled.")
		return err
	case err != nil:
		a.log.Error(ctx, "failed to clear notes", "error", err)
		return err
	}
	a.println("All notes cleared.")
	return nil
}
