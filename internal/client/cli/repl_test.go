package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  []string
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	if arg != "" {
		f.args = append(f.args, arg)
	}
	return nil
}

func (f *fakeExec) AddNote(ctx context.Context) error { return f.record("add", "") }
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", "") }
func (f *fakeExec) ExportNotes(ctx context.Context) error { return f.record("export", "") }
func (f *fakeExec) ClearNotes(ctx context.Context) error { return f.record("clear", "") }
func (f *fakeExec) Options(ctx context.Context) error { return f.record("opts", "") }
func (f *fakeExec) ExportOptions(ctx context.Context) error {
	return f.record("exportopts", "")
}
func (f *fakeExec) Reset(ctx context.Context) error { return f.record("reset", "") }
func (f *fakeExec) Find(ctx context.Context, expression string) error {
	return f.record("find", expression)
}
func (f *fakeExec) AddOption(ctx context.Context, category string) error {
	return f.record("addopt", category)
}
func (f *fakeExec) RemoveOption(ctx context.Context, category string) error {
	return f.record("rmopt", category)
}
func (f *fakeExec) ImportOptions(ctx context.Context, path string) error {
	return f.record("importopts", path)
}

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"",
		"new",
		"l",
		`find patientName == "J. Doe"`,
		"export",
		"clear",
		"options",
		"addopt activity",
		"rmopt nurse",
		"exportopts",
		"importopts /tmp/dropdown_data.json",
		"reset",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, bufio.NewReader(input))

	want := []string{"add", "list", "find", "export", "clear", "opts", "addopt", "rmopt", "exportopts", "importopts", "reset"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	wantArgs := []string{`patientName == "J. Doe"`, "activity", "nurse", "/tmp/dropdown_data.json"}
	if strings.Join(exec.args, "|") != strings.Join(wantArgs, "|") {
		t.Fatalf("args = %v, want %v", exec.args, wantArgs)
	}
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	printed := silencePrint(t)

	input := strings.NewReader("find\naddopt\nrmopt\nimportopts\nfoobar\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, bufio.NewReader(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	out := strings.Join(*printed, "\n")
	for _, want := range []string{"Usage: find", "Usage: addopt", "Usage: rmopt", "Usage: importopts", "Unknown command: foobar", "Bye!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q does not contain %q", out, want)
		}
	}
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader("list")))

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("calls = %v", exec.calls)
	}
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silencePrint(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, bufio.NewReader(strings.NewReader("list\nlist\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
