package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

func waitRun(t *testing.T, runs <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal(msg)
	}
}

func TestWatcherRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# one\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 16)
	w := &Watcher{Path: path, Debounce: 20 * time.Millisecond, Logger: log.Discard()}

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()

	waitRun(t, runs, "initial run did not happen")

	require.NoError(t, os.WriteFile(path, []byte("# two\n"), 0o600))
	waitRun(t, runs, "change did not trigger a run")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# doc\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 16)
	w := &Watcher{Path: path, Debounce: 20 * time.Millisecond, Logger: log.Discard()}
	go func() {
		_ = w.Run(ctx, func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	}()
	waitRun(t, runs, "initial run did not happen")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o600))

	select {
	case <-runs:
		t.Fatal("unrelated file triggered a run")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := &Watcher{Path: filepath.Join(t.TempDir(), "missing", "doc.md"), Logger: log.Discard()}

	err := w.Run(context.Background(), func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}
