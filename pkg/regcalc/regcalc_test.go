package regcalc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvalWithEcho(t *testing.T) {
	var out strings.Builder
	r, err := New(WithOutput(&out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if err := r.Eval("a add 5\nprint a\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "[a, add, 5]\n[print, a]\n5\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestExecStopsAtQuit(t *testing.T) {
	var out strings.Builder
	r, _ := New(WithOutput(&out), WithNoEcho())
	defer r.Close()

	done, err := r.Exec("x add 2")
	if err != nil || done {
		t.Fatalf("expected running, got %v %v", done, err)
	}
	done, err = r.Exec("quit")
	if err != nil || !done {
		t.Fatalf("expected terminated, got %v %v", done, err)
	}
	r.Exec("print x")
	if out.String() != "" {
		t.Errorf("expected no output after quit, got %q", out.String())
	}
	if diff := cmp.Diff([]string{"x"}, r.Registers()); diff != "" {
		t.Errorf("registers mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("b add x\nx add 7\nprint b\n"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	var out strings.Builder
	r, _ := New(WithOutput(&out), WithNoEcho())
	defer r.Close()
	if err := r.RunFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "7\n" {
		t.Errorf("expected '7\\n', got %q", out.String())
	}

	if err := r.RunFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHistoryWithoutJournal(t *testing.T) {
	r, _ := New(WithOutput(&strings.Builder{}))
	defer r.Close()
	if _, err := r.History("a", 0); !errors.Is(err, ErrNoJournal) {
		t.Errorf("expected ErrNoJournal, got %v", err)
	}
}

func TestMemoryJournal(t *testing.T) {
	r, _ := New(WithOutput(&strings.Builder{}), WithNoEcho(), WithMemoryJournal(), WithSession("mem"))
	defer r.Close()

	r.Eval("a add 5\na multiply 2\n")
	entries, err := r.History("A", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Value != "(5 * 2)" || entries[0].Session != "mem" {
		t.Errorf("unexpected history: %+v", entries)
	}
}

func TestSQLiteJournalAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	r1, err := New(WithOutput(&strings.Builder{}), WithJournal(path), WithSession("one"))
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	r1.Eval("a add 5\na add b\n")
	r1.Close()

	// A new run starts with an empty table but sees the old history.
	var out strings.Builder
	r2, err := New(WithOutput(&out), WithNoEcho(), WithJournal(path))
	if err != nil {
		t.Fatalf("failed to reopen journal: %v", err)
	}
	defer r2.Close()
	r2.Eval("print a\na add 1\n")
	if out.String() != "" {
		t.Errorf("registers must not be restored, got %q", out.String())
	}

	entries, err := r2.History("a", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Value)
	}
	if diff := cmp.Diff([]string{"1", "(5 + b)", "5"}, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if entries[0].Session != r2.Session() || entries[2].Session != "one" {
		t.Errorf("unexpected sessions: %s, %s", entries[0].Session, entries[2].Session)
	}
}

func TestBadJournalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "journal.db")
	if _, err := New(WithJournal(path)); err == nil {
		t.Error("expected error for unusable journal path")
	}
}
