package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	AddNote(ctx context.Context) error
	List(ctx context.Context) error
	Find(ctx context.Context, expression string) error
	ExportNotes(ctx context.Context) error
	ClearNotes(ctx context.Context) error
	Options(ctx context.Context) error
	AddOption(ctx context.Context, category string) error
	RemoveOption(ctx context.Context, category string) error
	ExportOptions(ctx context.Context) error
	ImportOptions(ctx context.Context, path string) error
	Reset(ctx context.Context) error
}

const helpText = `Available commands:
  add | new            fill in and save a note
  (l)ist               show all notes
  find <expr>          show notes matching an expression, e.g. find activity == "Vitals"
  export               write notes to nurse_notes_<date>.txt
  clear                delete all notes
  opts | options       show the option lists
  addopt <category>    add an option (nurse, patient, activity, observation)
  rmopt <category>     remove an option
  exportopts           write option lists to dropdown_data.json
  importopts <path>    replace option lists from a JSON bundle
  reset                delete all notes and options
  exit | quit          leave the program`

// runREPL starts a simple read–eval–print loop for the Nurse Notes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// or log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn("notes> ")
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "add", "new":
			_ = a.AddNote(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "find":
			if rest == "" {
				printlnFn("Usage: find <expression>")
				continue
			}
			_ = a.Find(ctx, rest)

		case "export":
			_ = a.ExportNotes(ctx)

		case "clear":
			_ = a.ClearNotes(ctx)

		case "opts", "options":
			_ = a.Options(ctx)

		case "addopt":
			if rest == "" {
				printlnFn("Usage: addopt <category>")
				continue
			}
			_ = a.AddOption(ctx, rest)

		case "rmopt":
			if rest == "" {
				printlnFn("Usage: rmopt <category>")
				continue
			}
			_ = a.RemoveOption(ctx, rest)

		case "exportopts":
			_ = a.ExportOptions(ctx)

		case "importopts":
			if rest == "" {
				printlnFn("Usage: importopts <path>")
				continue
			}
			_ = a.ImportOptions(ctx, rest)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
