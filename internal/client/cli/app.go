package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/nursenotes/internal/client/client"
	"github.com/dmitrijs2005/nursenotes/internal/client/config"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/client/services"
	"github.com/dmitrijs2005/nursenotes/internal/confirm"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
)

type App struct {
	config        *config.Config
	noteService   services.NoteService
	optionService services.OptionService
	resetService  services.ResetService
	prompter      confirm.Prompter
	reader        *bufio.Reader
	out           io.Writer
	log           logging.Logger
	now           func() time.Time
	closer        io.Closer
}

// NewApp opens the configured storage and wires the services around it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, false)

	repo, closer, err := client.InitStorage(ctx, c.Backend, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing storage", "backend", c.Backend, "path", c.StoragePath, "error", err)
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)

	var prompter confirm.Prompter = confirm.NewTerminalPrompter(confirm.NewReaderPrompter(reader, os.Stdout))
	if c.AssumeYes {
		prompter = confirm.AssumeYes{}
	}

	a := newApp(c, repo, reader, os.Stdout, prompter, log)
	a.closer = closer
	return a, nil
}

func newApp(c *config.Config, repo storage.Repository, reader *bufio.Reader, out io.Writer, p confirm.Prompter, log logging.Logger) *App {
	return &App{
		config:        c,
		noteService:   services.NewNoteService(repo, log),
		optionService: services.NewOptionService(repo, log),
		resetService:  services.NewResetService(repo, log),
		prompter:      p,
		reader:        reader,
		out:           out,
		log:           log,
		now:           time.Now,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	if a.closer != nil {
		defer a.closer.Close()
	}
	printlnFn("Nurse Notes (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// confirm asks message and returns the resulting token.
func (a *App) confirm(ctx context.Context, message string) (confirm.Token, error) {
	tok, err := confirm.Ask(ctx, a.prompter, message)
	if err != nil {
		a.log.Warn(ctx, "confirmation failed", "error", err)
		a.println("Cancelled:", err)
		return tok, err
	}
	return tok, nil
}
