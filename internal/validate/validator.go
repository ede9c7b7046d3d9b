// Package validate runs the extract, stage, resolve, render, release pipeline
// for one Markdown document.
package validate

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mermaidlint/internal/extract"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
	"github.com/felixgeelhaar/mermaidlint/internal/runner"
	"github.com/felixgeelhaar/mermaidlint/internal/workspace"
)

// Workspaces hands out a fresh workspace per run.
type Workspaces interface {
	Acquire() (*workspace.Workspace, error)
}

// Options are per-run directives.
type Options struct {
	// Keep preserves the workspace regardless of outcome.
	Keep bool
	// Document names the input in reports and the workspace manifest.
	Document string
}

// Validator validates the diagram blocks of a document.
type Validator struct {
	Extractor  extract.Extractor
	Resolver   runner.Resolver
	Workspaces Workspaces
	// Candidates names the probed commands for remediation text.
	Candidates []string
	Logger     *log.Logger
}

// Run validates every block of doc. The returned error is reserved for fatal
// conditions: workspace failures and cancellation. All other terminal states,
// including render failures and a missing runner, are carried by the Report.
func (v *Validator) Run(ctx context.Context, doc string, opts Options) (*Report, error) {
	logger := v.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	report := &Report{Document: opts.Document, Candidates: v.candidates()}

	report.Blocks = v.Extractor.Extract(doc)
	if len(report.Blocks) == 0 {
		report.Status = StatusNoBlocks
		logger.Info("no diagram blocks found", "document", opts.Document)
		return report, nil
	}

	ws, err := v.Workspaces.Acquire()
	if err != nil {
		return nil, err
	}
	report.RunID = ws.RunID
	logger = logger.With("run_id", ws.RunID)
	logger.Info("validating diagram blocks", "document", opts.Document, "blocks", len(report.Blocks), "workspace", ws.Root)

	for _, b := range report.Blocks {
		if _, err := ws.WriteInput(b.Index, b.Source); err != nil {
			// Nothing rendered yet, so the partial tree has no diagnostic value.
			ws.Release(workspace.OutcomePassed, opts.Keep)
			return nil, err
		}
	}

	renderer, err := v.Resolver.Resolve(ctx)
	if ctx.Err() != nil {
		return v.interrupt(ctx, report, ws, opts, logger)
	}
	if err != nil {
		logger.WithError(err).Warn("no runner available")
		report.Status = StatusNoRunner
		v.finish(report, ws, workspace.OutcomeIncomplete, opts, logger)
		return report, nil
	}
	if s, ok := renderer.(fmt.Stringer); ok {
		report.Runner = s.String()
	}

	for _, b := range report.Blocks {
		if ctx.Err() != nil {
			return v.interrupt(ctx, report, ws, opts, logger)
		}

		res := renderer.Render(ctx, b.Index, ws.InputPath(b.Index), ws.OutputPath(b.Index))
		report.Results = append(report.Results, res)
		logger.Debug("block rendered", "block", b.Index, "line", b.Line, "succeeded", res.Succeeded, "exit_code", res.ExitCode, "duration", res.Duration)
	}

	if ctx.Err() != nil {
		return v.interrupt(ctx, report, ws, opts, logger)
	}

	outcome := workspace.OutcomePassed
	report.Status = StatusPassed
	if report.FailedCount() > 0 {
		outcome = workspace.OutcomeFailed
		report.Status = StatusFailed
	}
	v.finish(report, ws, outcome, opts, logger)
	return report, nil
}

// interrupt keeps whatever was staged or rendered so far.
func (v *Validator) interrupt(ctx context.Context, report *Report, ws *workspace.Workspace, opts Options, logger *log.Logger) (*Report, error) {
	report.Status = StatusInterrupted
	v.finish(report, ws, workspace.OutcomeIncomplete, opts, logger)
	return report, ctx.Err()
}

// finish writes the manifest and releases the workspace exactly once.
func (v *Validator) finish(report *Report, ws *workspace.Workspace, outcome workspace.Outcome, opts Options, logger *log.Logger) {
	if workspace.Decide(outcome, opts.Keep) != workspace.KeepNone {
		if err := ws.WriteManifest(v.manifest(report, ws)); err != nil {
			logger.Warn("manifest not written", "error", err.Error())
		}
	}

	d := ws.Release(outcome, opts.Keep)
	report.Workspace = d.Path
	report.Kept = d.Kept
	report.KeepReason = d.Reason
	logger.Info("validation finished", "status", string(report.Status), "kept", d.Kept)
}

func (v *Validator) manifest(report *Report, ws *workspace.Workspace) *workspace.Manifest {
	m := &workspace.Manifest{
		RunID:    ws.RunID,
		Document: report.Document,
		Runner:   report.Runner,
	}
	for i, b := range report.Blocks {
		e := workspace.ManifestEntry{
			Index:  b.Index,
			Line:   b.Line,
			Digest: b.Digest,
			Input:  ws.InputPath(b.Index),
			Output: ws.OutputPath(b.Index),
		}
		if i < len(report.Results) {
			e.Rendered = true
			e.Succeeded = report.Results[i].Succeeded
			e.ExitCode = report.Results[i].ExitCode
		}
		m.Blocks = append(m.Blocks, e)
	}
	return m
}

func (v *Validator) candidates() []string {
	if len(v.Candidates) > 0 {
		return v.Candidates
	}
	return runner.Commands(runner.DefaultCandidates())
}
