// Package watch re-runs an action whenever a single file changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Action is invoked once at start and once per settled change. Its error is
// logged and does not stop the watch.
type Action func(ctx context.Context) error

// Watcher watches one file.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *log.Logger
	// Screen is cleared before each re-run when it is a terminal.
	Screen io.Writer
}

// Run calls action, then watches until ctx is done. The parent directory is
// watched rather than the file so that editors which save by rename keep
// triggering runs.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	logger := w.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	w.run(ctx, action, logger)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&relevantOps == 0 {
				continue
			}
			logger.Debug("document changed", "path", target, "op", event.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.clear()
			w.run(ctx, action, logger)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) run(ctx context.Context, action Action, logger *log.Logger) {
	if err := action(ctx); err != nil && ctx.Err() == nil {
		logger.Debug("watched run finished with error", "error", err.Error())
	}
}

func (w *Watcher) clear() {
	if IsTerminal(w.Screen) {
		fmt.Fprint(w.Screen, "\033[H\033[2J")
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
