package app

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// newTestApp builds an application with scripted input, captured
// output, and an empty prompt so output comparisons are exact.
func newTestApp(t *testing.T, initial int, inputText string) (*Application, *bytes.Buffer) {
	t.Helper()
	t.Setenv("REVCALC_PROMPT", "")

	var out bytes.Buffer
	application, err := New(Options{
		Initial:   initial,
		Input:     strings.NewReader(inputText),
		Output:    &out,
		ErrOutput: io.Discard,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return application, &out
}

func TestRunScenarioSequence(t *testing.T) {
	application, out := newTestApp(t, 1,
		"increment, increment, increment, double, undo, undo\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	want := "After 'increment': 2\n" +
		"After 'increment': 3\n" +
		"After 'increment': 4\n" +
		"After 'double': 8\n" +
		"After 'undo': 4\n" +
		"After 'undo': 3\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if application.Result() != 3 {
		t.Errorf("Result() = %d, want 3", application.Result())
	}
}

func TestRunUndoEmptyHistory(t *testing.T) {
	application, out := newTestApp(t, 5, "undo\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	if out.String() != "No command to undo.\n" {
		t.Errorf("output = %q, want no-undo notice", out.String())
	}
	if application.Result() != 5 {
		t.Errorf("Result() = %d, want 5 unchanged", application.Result())
	}
}

func TestRunUnknownCommandContinuesBatch(t *testing.T) {
	application, out := newTestApp(t, 0, "foo, increment\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	want := "Unknown command: foo\nAfter 'increment': 1\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunUppercaseAndSpacing(t *testing.T) {
	application, out := newTestApp(t, 0, "  INCREMENT ,, Double \n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	want := "After 'increment': 1\nAfter 'double': 2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunMultipleLines(t *testing.T) {
	application, out := newTestApp(t, 0, "increment\ndouble\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	want := "After 'increment': 1\nAfter 'double': 2\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunQuit(t *testing.T) {
	application, _ := newTestApp(t, 0, "increment\nquit\nincrement\n")

	err := application.Run()
	if !errors.Is(err, ErrQuit) {
		t.Errorf("Run() error = %v, want ErrQuit", err)
	}
	defer application.Shutdown()

	// The token after quit never ran.
	if application.Result() != 1 {
		t.Errorf("Result() = %d, want 1", application.Result())
	}
}

func TestRunEmptyLines(t *testing.T) {
	application, out := newTestApp(t, 3, "\n\n   \nincrement\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	if out.String() != "After 'increment': 4\n" {
		t.Errorf("output = %q, want single result line", out.String())
	}
}

func TestRunAlreadyRunning(t *testing.T) {
	application, _ := newTestApp(t, 0, "")

	// Simulate a concurrent Run by flipping the flag directly.
	application.running.Store(true)
	if err := application.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Run() error = %v, want ErrAlreadyRunning", err)
	}
	application.running.Store(false)
}

func TestPromptIsPrinted(t *testing.T) {
	t.Setenv("REVCALC_PROMPT", "calc> ")

	var out bytes.Buffer
	application, err := New(Options{
		Initial:   0,
		Input:     strings.NewReader("increment\n"),
		Output:    &out,
		ErrOutput: io.Discard,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer application.Shutdown()

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "calc> After 'increment': 1\ncalc> "
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestSessionRecordsRun(t *testing.T) {
	application, _ := newTestApp(t, 1, "increment, foo, undo\n")

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	defer application.Shutdown()

	sess := application.Session()
	if sess.Len() != 3 {
		t.Errorf("session entries = %d, want 3", sess.Len())
	}
	if sess.Initial != 1 || sess.Final != 1 {
		t.Errorf("Initial/Final = %d/%d, want 1/1", sess.Initial, sess.Final)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	application, _ := newTestApp(t, 0, "")
	application.Shutdown()
	application.Shutdown()
}
