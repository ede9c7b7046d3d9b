package runner

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

// ProbeResolver probes candidates in order and remembers its first answer.
// Later calls return the same runner (or the same error) without probing again.
type ProbeResolver struct {
	Candidates []Candidate
	Exec       Executor
	Logger     *log.Logger

	once     sync.Once
	resolved *Runner
	err      error
}

// NewProbeResolver creates a resolver; nil or empty candidates mean DefaultCandidates.
func NewProbeResolver(candidates []Candidate, exec Executor, logger *log.Logger) *ProbeResolver {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	if exec == nil {
		exec = SystemExecutor{}
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &ProbeResolver{Candidates: candidates, Exec: exec, Logger: logger}
}

// Resolve implements Resolver.
func (r *ProbeResolver) Resolve(ctx context.Context) (Renderer, error) {
	r.once.Do(func() {
		r.resolved, r.err = r.probe(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}
	return r.resolved, nil
}

// Runner returns the resolved runner, or nil before a successful Resolve.
func (r *ProbeResolver) Runner() *Runner {
	return r.resolved
}

func (r *ProbeResolver) probe(ctx context.Context) (*Runner, error) {
	for _, c := range r.Candidates {
		if err := Probe(ctx, r.Exec, c); err != nil {
			r.Logger.Debug("runner probe failed", "command", c.Command, "error", err.Error())
			continue
		}
		r.Logger.Debug("runner selected", "command", c.Command)
		return New(c, r.Exec), nil
	}
	return nil, errors.NewRunnerUnavailableError(Commands(r.Candidates))
}
