package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/confirm"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
)

// ResetService wipes all notes and option lists at once.
type ResetService interface {
	Reset(ctx context.Context, token confirm.Token) error
}

type resetService struct {
	repo storage.Repository
	log  logging.Logger
}

func NewResetService(repo storage.Repository, log logging.Logger) ResetService {
	return &resetService{repo: repo, log: log.With("component", "reset")}
}

func (s *resetService) Reset(ctx context.Context, token confirm.Token) error {
	if err := confirm.Require(token); err != nil {
		return err
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storage: %w", err)
	}
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}
	s.log.Info(ctx, "storage reset", "keys", len(existing))
	return nil
}
