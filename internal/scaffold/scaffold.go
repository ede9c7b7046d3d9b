// Package scaffold renders an issue document skeleton from an embedded template,
// filled with issue metadata when it can be looked up.
package scaffold

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

//go:embed templates/*.md
var templates embed.FS

// Kind selects the template.
type Kind string

const (
	KindFeature Kind = "feature"
	KindBug     Kind = "bug"
	KindChore   Kind = "chore"
)

// Placeholders used when metadata is unavailable.
const (
	PlaceholderTitle = "[issue title]"
	PlaceholderURL   = "[issue url]"
)

// NormalizeKind trims and lowercases raw. Empty means feature.
func NormalizeKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return KindFeature, nil
	case KindFeature, KindBug, KindChore:
		return k, nil
	default:
		return "", errors.NewScaffoldKindError(raw)
	}
}

// Template returns the raw template text for k. Chores share the feature
// template.
func Template(k Kind) (string, error) {
	name := "templates/feature.md"
	if k == KindBug {
		name = "templates/bug.md"
	}
	data, err := templates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(data), nil
}

// Apply replaces every {{KEY}} in template.
func Apply(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Request is one scaffold invocation.
type Request struct {
	Issue string
	Kind  string
	Repo  string
}

// Scaffolder renders issue specs.
type Scaffolder struct {
	// Source looks up issue metadata; nil skips the lookup.
	Source MetadataSource
	// Remote returns the origin URL used when neither the issue nor the
	// request names a repository.
	Remote func() (string, error)
	Now    func() time.Time
	Logger *log.Logger
}

// Render returns the filled template. Only an invalid kind is an error; any
// metadata problem falls back to placeholders.
func (s *Scaffolder) Render(ctx context.Context, req Request) (string, error) {
	kind, err := NormalizeKind(req.Kind)
	if err != nil {
		return "", err
	}
	tmpl, err := Template(kind)
	if err != nil {
		return "", err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	title, url := PlaceholderTitle, PlaceholderURL
	if meta := s.lookup(ctx, req); meta != nil {
		title, url = meta.Title, meta.URL
	}

	return Apply(tmpl, map[string]string{
		"DATE":      now().UTC().Format("2006-01-02"),
		"ISSUE_URL": url,
		"TITLE":     title,
	}), nil
}

func (s *Scaffolder) lookup(ctx context.Context, req Request) *IssueMeta {
	logger := s.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}
	if s.Source == nil {
		return nil
	}

	remote := ""
	if req.Repo == "" && !strings.Contains(req.Issue, "/") && s.Remote != nil {
		if u, err := s.Remote(); err == nil {
			remote = u
		} else {
			logger.Debug("no origin remote", "error", err.Error())
		}
	}

	ref, err := ParseIssueRef(req.Issue, req.Repo, remote)
	if err != nil {
		logger.Info("issue metadata unavailable", "issue", req.Issue, "error", err.Error())
		return nil
	}

	meta, err := s.Source.Lookup(ctx, ref)
	if err != nil {
		logger.Info("issue metadata unavailable", "issue", ref.String(), "error", err.Error())
		return nil
	}
	if meta.Title == "" || meta.URL == "" {
		return nil
	}
	return meta
}

// WriteFile stores content at path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
