// Package config holds mermaidlint's settings and how they are loaded.
package config

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/felixgeelhaar/mermaidlint/internal/extract"
	"github.com/felixgeelhaar/mermaidlint/internal/runner"
	"github.com/felixgeelhaar/mermaidlint/internal/workspace"
)

// Config is the effective configuration after file, env, and defaults.
type Config struct {
	Extract   ExtractConfig      `koanf:"extract" yaml:"extract" json:"extract"`
	Runners   []runner.Candidate `koanf:"runners" yaml:"runners" json:"runners"`
	Workspace WorkspaceConfig    `koanf:"workspace" yaml:"workspace" json:"workspace"`
	Log       LogConfig          `koanf:"log" yaml:"log" json:"log"`
	Watch     WatchConfig        `koanf:"watch" yaml:"watch" json:"watch"`
	GitHub    GitHubConfig       `koanf:"github" yaml:"github" json:"github"`

	// Source is the file the configuration was read from, if any.
	Source string `koanf:"-" yaml:"-" json:"-"`
}

// ExtractConfig selects how diagram blocks are found.
type ExtractConfig struct {
	Language string `koanf:"language" yaml:"language" json:"language"`
	Strict   bool   `koanf:"strict" yaml:"strict" json:"strict"`
}

// WorkspaceConfig places the per-run temporary tree.
type WorkspaceConfig struct {
	Dir       string `koanf:"dir" yaml:"dir,omitempty" json:"dir,omitempty"`
	Prefix    string `koanf:"prefix" yaml:"prefix" json:"prefix"`
	Extension string `koanf:"extension" yaml:"extension" json:"extension"`
	Keep      bool   `koanf:"keep" yaml:"keep" json:"keep"`
}

// LogConfig configures internal/log.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
	File   string `koanf:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// WatchConfig tunes validate --watch.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" yaml:"debounce" json:"debounce"`
}

// GitHubConfig is used by scaffold for issue lookups.
type GitHubConfig struct {
	Token  string `koanf:"token" yaml:"-" json:"-"`
	Repo   string `koanf:"repo" yaml:"repo,omitempty" json:"repo,omitempty"`
	APIURL string `koanf:"api_url" yaml:"api_url,omitempty" json:"api_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Extract: ExtractConfig{Language: extract.DefaultLanguage},
		Runners: runner.DefaultCandidates(),
		Workspace: WorkspaceConfig{
			Prefix:    workspace.DefaultPrefix,
			Extension: workspace.DefaultExtension,
		},
		Log:   LogConfig{Level: "warn", Format: "text"},
		Watch: WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

// applyDefaults fills zero values left after unmarshalling.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Extract.Language == "" {
		cfg.Extract.Language = def.Extract.Language
	}
	if len(cfg.Runners) == 0 {
		cfg.Runners = def.Runners
	}
	if cfg.Workspace.Prefix == "" {
		cfg.Workspace.Prefix = def.Workspace.Prefix
	}
	if cfg.Workspace.Extension == "" {
		cfg.Workspace.Extension = def.Workspace.Extension
	}
	cfg.Workspace.Extension = strings.TrimPrefix(cfg.Workspace.Extension, ".")
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = def.Watch.Debounce
	}
}

var (
	languagePattern = regexp.MustCompile(`^[A-Za-z0-9_+-]+$`)
	repoPattern     = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	prefixPattern   = regexp.MustCompile(`^[^/\\]*$`)
	commandPattern  = regexp.MustCompile(`^\S+$`)
)

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Extract),
		validation.Field(&c.Runners, validation.Required, validation.Each(validation.By(validateCandidate))),
		validation.Field(&c.Workspace),
		validation.Field(&c.Log),
		validation.Field(&c.Watch),
		validation.Field(&c.GitHub),
	)
}

// Validate implements validation.Validatable.
func (e ExtractConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Language, validation.Required, validation.Match(languagePattern)),
	)
}

// Validate implements validation.Validatable.
func (w WorkspaceConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Prefix, validation.Match(prefixPattern).Error("must not contain path separators")),
		validation.Field(&w.Extension, validation.Required, validation.In("svg", "png", "pdf")),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&l.Format, validation.In("text", "json")),
	)
}

// Validate implements validation.Validatable.
func (w WatchConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Debounce, validation.Min(time.Duration(0)), validation.Max(time.Minute)),
	)
}

// Validate implements validation.Validatable.
func (g GitHubConfig) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Repo, validation.Match(repoPattern).Error("must be OWNER/REPO")),
		validation.Field(&g.APIURL, is.URL),
	)
}

func validateCandidate(value interface{}) error {
	c, ok := value.(runner.Candidate)
	if !ok {
		return validation.NewError("validation_runner_type", "must be a runner entry")
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required, validation.Match(commandPattern)),
	)
}
