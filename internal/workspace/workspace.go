// Package workspace owns the temporary directory tree used for one validation run.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

const (
	// DefaultPrefix names workspace directories under the temp dir.
	DefaultPrefix = "mermaidlint-"
	// DefaultExtension is the rendered output format passed to the CLI via -o.
	DefaultExtension = "svg"

	renderedDir = "rendered"
)

// Outcome summarizes a run for the retention decision.
type Outcome int

const (
	// OutcomePassed means every block rendered.
	OutcomePassed Outcome = iota
	// OutcomeFailed means at least one block failed to render.
	OutcomeFailed
	// OutcomeIncomplete means no results could be produced (no runner, interrupted).
	OutcomeIncomplete
)

// KeepReason explains why a workspace was preserved.
type KeepReason string

const (
	KeepNone       KeepReason = ""
	KeepRequested  KeepReason = "requested"
	KeepFailed     KeepReason = "failed"
	KeepIncomplete KeepReason = "incomplete"
)

// Disposition is the final state of a released workspace.
type Disposition struct {
	Path   string
	Kept   bool
	Reason KeepReason
}

// Decide applies the retention policy: keep on request, on failure, or when the
// run produced no results; remove otherwise.
func Decide(outcome Outcome, keepRequested bool) KeepReason {
	switch {
	case keepRequested:
		return KeepRequested
	case outcome == OutcomeFailed:
		return KeepFailed
	case outcome == OutcomeIncomplete:
		return KeepIncomplete
	default:
		return KeepNone
	}
}

// Manager creates workspaces.
type Manager struct {
	// Dir is the parent directory; empty means os.TempDir().
	Dir string
	// Prefix starts every workspace directory name.
	Prefix string
	// Extension is the output file extension, without the dot.
	Extension string
	Logger    *log.Logger
}

// NewManager returns a Manager with defaults filled in.
func NewManager(dir, prefix, extension string, logger *log.Logger) *Manager {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if extension == "" {
		extension = DefaultExtension
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{Dir: dir, Prefix: prefix, Extension: strings.TrimPrefix(extension, "."), Logger: logger}
}

// Acquire creates a fresh, uniquely named directory with a nested output
// directory. Both exist and are writable when it returns without error.
func (m *Manager) Acquire() (*Workspace, error) {
	parent := m.Dir
	if parent == "" {
		parent = os.TempDir()
	}

	runID := uuid.New().String()
	root, err := os.MkdirTemp(parent, m.Prefix+runID[:8]+"-")
	if err != nil {
		return nil, errors.NewWorkspaceCreateError(parent, err)
	}

	out := filepath.Join(root, renderedDir)
	if err := os.MkdirAll(out, 0o700); err != nil {
		_ = os.RemoveAll(root)
		return nil, errors.NewWorkspaceCreateError(parent, err)
	}

	m.Logger.Debug("workspace acquired", "path", root, "run_id", runID)
	return &Workspace{
		Root:      root,
		OutputDir: out,
		RunID:     runID,
		extension: m.Extension,
		logger:    m.Logger,
	}, nil
}

// Workspace is one acquired directory tree. It is owned by a single run.
type Workspace struct {
	Root      string
	OutputDir string
	RunID     string

	extension string
	logger    *log.Logger

	releaseOnce sync.Once
	disposition Disposition
}

// InputPath is the source file slot for a 1-based block index.
func (w *Workspace) InputPath(index int) string {
	return filepath.Join(w.Root, fmt.Sprintf("diagram-%d.mmd", index))
}

// OutputPath is the rendered file slot for a 1-based block index.
func (w *Workspace) OutputPath(index int) string {
	return filepath.Join(w.OutputDir, fmt.Sprintf("diagram-%d.%s", index, w.extension))
}

// WriteInput stores a block's source in its input slot.
func (w *Workspace) WriteInput(index int, source string) (string, error) {
	path := w.InputPath(index)
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		return "", errors.NewWorkspaceWriteError(path, err)
	}
	return path, nil
}

// Release removes the tree unless the retention policy keeps it. Only the first
// call acts; later calls return the first disposition. Removal errors are
// logged and otherwise ignored.
func (w *Workspace) Release(outcome Outcome, keepRequested bool) Disposition {
	w.releaseOnce.Do(func() {
		reason := Decide(outcome, keepRequested)
		w.disposition = Disposition{Path: w.Root, Kept: reason != KeepNone, Reason: reason}
		if w.disposition.Kept {
			w.logger.Debug("workspace kept", "path", w.Root, "reason", string(reason))
			return
		}
		if err := os.RemoveAll(w.Root); err != nil {
			w.logger.Debug("workspace cleanup failed", "path", w.Root, "error", err.Error())
		}
	})
	return w.disposition
}
