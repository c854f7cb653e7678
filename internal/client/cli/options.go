package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/nursenotes/internal/client/models"
	"github.com/dmitrijs2005/nursenotes/internal/client/services"
)

func (a *App) parseCategory(s string) (models.Category, error) {
	c, err := models.ParseCategory(s)
	if err != nil {
		a.println(err)
		return "", err
	}
	return c, nil
}

func (a *App) printBundle(b models.Bundle) {
	for _, c := range models.Categories {
		a.printf("%s: %s\n", c.Label(), strings.Join(b[c], ", "))
	}
}

// Options prints the four option lists.
func (a *App) Options(ctx context.Context) error {
	b := make(models.Bundle, len(models.Categories))
	for _, c := range models.Categories {
		values, err := a.optionService.LoadAll(ctx, c)
		if err != nil {
			a.log.Error(ctx, "failed to load options", "category", c, "error", err)
			return err
		}
		b[c] = values
	}
	a.printBundle(b)
	return nil
}

// AddOption keeps asking for a value until one is added or the user enters
// an empty line.
func (a *App) AddOption(ctx context.Context, category string) error {
	c, err := a.parseCategory(category)
	if err != nil {
		return err
	}

	for {
		value, err := GetSimpleText(a.reader, fmt.Sprintf("- New %s (empty to cancel)", strings.ToLower(c.Label())), a.out)
		if err != nil {
			return err
		}
		if value == "" {
			return nil
		}

		res, err := a.optionService.Add(ctx, c, value)
		if err != nil {
			a.log.Error(ctx, "failed to add option", "category", c, "error", err)
			return err
		}
		if res == services.Added {
			a.printf("Added %q.\n", value)
			return nil
		}
		a.printf("%q is already in the list.\n", value)
	}
}

func (a *App) RemoveOption(ctx context.Context, category string) error {
	c, err := a.parseCategory(category)
	if err != nil {
		return err
	}

	values, err := a.optionService.LoadAll(ctx, c)
	if err != nil {
		a.log.Error(ctx, "failed to load options", "category", c, "error", err)
		return err
	}
	if len(values) == 0 {
		a.printf("No %s options.\n", strings.ToLower(c.Label()))
		return nil
	}

	i, err := GetChoice(a.reader, "- Remove which "+strings.ToLower(c.Label()), values, a.out)
	if err != nil {
		return err
	}

	res, err := a.optionService.RemoveSelected(ctx, c, i)
	if err != nil {
		a.log.Error(ctx, "failed to remove option", "category", c, "error", err)
		return err
	}
	if res == services.Removed {
		a.printf("Removed %q.\n", values[i])
	} else {
		a.println("Nothing selected.")
	}
	return nil
}

func (a *App) ExportOptions(ctx context.Context) error {
	path, err := a.optionService.Export(ctx, a.config.ExportDir)
	if err != nil {
		a.log.Error(ctx, "failed to export options", "error", err)
		a.println("Export failed:", err)
		return err
	}
	a.println("Options exported to", path)
	return nil
}

// ImportOptions reads a bundle file and replaces the lists it contains.
// Errors are shown to the user.
func (a *App) ImportOptions(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		a.println("Import failed:", err)
		return err
	}

	b, err := a.optionService.ImportBundle(ctx, raw)
	if err != nil {
		a.println("Import failed:", err)
		return err
	}

	a.println("Options imported.")
	a.printBundle(b)
	return nil
}
