package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func executeWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestReplCmdEvaluatesLines(t *testing.T) {
	isolateConfig(t)
	table := writeAnalogyTable(t)

	input := "king - man + queen\n\nxx yy\n"
	out, errOut, err := executeWithInput(t, input, "repl", table)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !strings.Contains(out, "royal cosine: 1.0000") {
		t.Errorf("stdout = %q", out)
	}
	// The all-unknown line is informational, the blank line is ignored.
	if !strings.Contains(errOut, "no valid input words") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestReplCmdEOFExitsCleanly(t *testing.T) {
	isolateConfig(t)
	table := writeAnalogyTable(t)

	if _, _, err := executeWithInput(t, "", "repl", table); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestShouldReload(t *testing.T) {
	tablePath := "/data/vectors.txt"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "write to the table",
			event: fsnotify.Event{Name: "/data/vectors.txt", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "create replaces the table",
			event: fsnotify.Event{Name: "/data/vectors.txt", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "rename onto the table",
			event: fsnotify.Event{Name: "/data/vectors.txt", Op: fsnotify.Rename},
			want:  true,
		},
		{
			name:  "unclean path still matches",
			event: fsnotify.Event{Name: "/data/./vectors.txt", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "write to a sibling file",
			event: fsnotify.Event{Name: "/data/other.txt", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "chmod on the table",
			event: fsnotify.Event{Name: "/data/vectors.txt", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "remove on the table",
			event: fsnotify.Event{Name: "/data/vectors.txt", Op: fsnotify.Remove},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldReload(tt.event, tablePath)
			if got != tt.want {
				t.Errorf("shouldReload() = %v, want %v", got, tt.want)
			}
		})
	}
}

// syncBuffer lets the test poll output written from the command's
// goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, buf *syncBuffer, substr string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), substr) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in %q", substr, buf.String())
}

func TestReplCmdReloadsChangedTable(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte("king 1 0\nqueen 0.9 0.1\n"), 0644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	pr, pw := io.Pipe()
	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"repl", path, "--debounce", "50ms"})
	cmd.SetIn(pr)

	out := &syncBuffer{}
	errOut := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	waitForOutput(t, errOut, "watching")

	// Rewrite the table; the debounced watcher swaps in the new words.
	grown := "king 1 0\nqueen 0.9 0.1\nman 0.1 1\nroyal 1.8 -0.9\n"
	if err := os.WriteFile(path, []byte(grown), 0644); err != nil {
		t.Fatalf("rewrite table: %v", err)
	}
	waitForOutput(t, errOut, "reloaded 4 words")

	// The expression only resolves against the reloaded table.
	if _, err := pw.Write([]byte("king - man + queen\n")); err != nil {
		t.Fatalf("write line: %v", err)
	}
	waitForOutput(t, out, "royal cosine: 1.0000")

	pw.Close()
	if err := <-done; err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestReplCmdContextCancel(t *testing.T) {
	isolateConfig(t)
	table := writeAnalogyTable(t)

	pr, pw := io.Pipe()
	defer pw.Close()

	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"repl", table})
	cmd.SetIn(pr)
	cmd.SetOut(&syncBuffer{})
	cmd.SetErr(&syncBuffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("repl did not stop on context cancel")
	}
}
