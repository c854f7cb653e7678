// Package confirm gates destructive operations behind an explicit yes/no
// answer. Stores accept a Token instead of calling a prompt themselves, so
// they stay testable and can never clear data on their own initiative.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/nursenotes/internal/common"
	"golang.org/x/term"
)

// ErrNoTerminal is returned by TerminalPrompter when stdin is not
// interactive and the answer cannot be trusted.
var ErrNoTerminal = errors.New("confirmation requires an interactive terminal")

// Token is the result of a confirmation step. The zero value is a refusal;
// only Ask can produce a granted token.
type Token struct {
	granted bool
	action  string
}

// Granted reports whether the user agreed.
func (t Token) Granted() bool { return t.granted }

// Action is the message the user answered.
func (t Token) Action() string { return t.action }

// Require returns common.ErrNotConfirmed unless t was granted.
func Require(t Token) error {
	if !t.granted {
		return common.ErrNotConfirmed
	}
	return nil
}

// Prompter asks a blocking yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Ask runs p and wraps the answer in a Token. A prompt error yields a
// refused token together with the error.
func Ask(ctx context.Context, p Prompter, message string) (Token, error) {
	if err := ctx.Err(); err != nil {
		return Token{}, err
	}
	ok, err := p.Confirm(ctx, message)
	if err != nil {
		return Token{}, err
	}
	return Token{granted: ok, action: message}, nil
}

// AssumeYes answers every question with yes. Used with the -y flag.
type AssumeYes struct{}

func (AssumeYes) Confirm(context.Context, string) (bool, error) { return true, nil }

// ReaderPrompter prints the question to w and reads one line from r.
// Only "y" and "yes" (any case) count as agreement.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewReaderPrompter(r *bufio.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: r, w: w}
}

func (p *ReaderPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	if _, err := fmt.Fprintf(p.w, "%s [y/N]\n> ", message); err != nil {
		return false, err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// TerminalPrompter refuses to ask when stdin is not a terminal, so piped
// input can't answer a destructive prompt by accident.
type TerminalPrompter struct {
	next Prompter
	fd   int
}

func NewTerminalPrompter(next Prompter) *TerminalPrompter {
	return &TerminalPrompter{next: next, fd: int(os.Stdin.Fd())}
}

func (p *TerminalPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	if !isTerminal(p.fd) {
		return false, ErrNoTerminal
	}
	return p.next.Confirm(ctx, message)
}
