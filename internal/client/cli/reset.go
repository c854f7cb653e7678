package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nursenotes/internal/common"
)

// Reset wipes all notes and option lists after confirmation.
func (a *App) Reset(ctx context.Context) error {
	tok, err := a.confirm(ctx, "Reset all notes and options? This cannot be undone.")
	if err != nil {
		return err
	}

	err = a.resetService.Reset(ctx, tok)
	switch {
	case errors.Is(err, common.ErrNotConfirmed):
		a.println("Cancelled.")
		return err
	case err != nil:
		a.log.Error(ctx, "failed to reset", "error", err)
		return err
	}
	a.println("Everything was reset.")
	return nil
}
