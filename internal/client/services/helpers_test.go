package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/confirm"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk failure")

// failingRepo fails every call with errDisk.
type failingRepo struct{}

func (failingRepo) Get(context.Context, string) ([]byte, error) { return nil, errDisk }
func (failingRepo) Set(context.Context, string, []byte) error { return errDisk }
func (failingRepo) SetMany(context.Context, map[string][]byte) error { return errDisk }
func (failingRepo) Delete(context.Context, string) error { return errDisk }
func (failingRepo) List(context.Context) (map[string][]byte, error) { return nil, errDisk }
func (failingRepo) Clear(context.Context) error { return errDisk }

// spyRepo records writes on top of a memory repository.
type spyRepo struct {
	*storage.MemoryRepository
	writes int
}

func (r *spyRepo) Set(ctx context.Context, key string, value []byte) error {
	r.writes++
	return r.MemoryRepository.Set(ctx, key, value)
}

func (r *spyRepo) SetMany(ctx context.Context, values map[string][]byte) error {
	r.writes++
	return r.MemoryRepository.SetMany(ctx, values)
}

func newSpyRepo() *spyRepo {
	return &spyRepo{MemoryRepository: storage.NewMemoryRepository()}
}

func captureLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(&buf, "debug", false), &buf
}

func granted(t *testing.T) confirm.Token {
	t.Helper()
	tok, err := confirm.Ask(context.Background(), confirm.AssumeYes{}, "are you sure?")
	require.NoError(t, err)
	require.True(t, tok.Granted())
	return tok
}
