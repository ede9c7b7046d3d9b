package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

const (
	// EnvPrefix marks environment overrides, e.g. MERMAIDLINT_WORKSPACE_DIR.
	EnvPrefix = "MERMAIDLINT_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load builds the effective configuration.
//
// Precedence (highest to lowest):
//  1. MERMAIDLINT_* environment variables
//  2. the config file: explicitPath if set, otherwise the first one found by
//     Discover starting at dir
//  3. built-in defaults
//
// An explicitPath that does not exist is an error; a missing discovered file
// is not. GITHUB_TOKEN is used when no token is configured.
func Load(explicitPath, dir string) (*Config, error) {
	k := koanf.New(".")

	path := explicitPath
	if path == "" {
		if found, ok := Discover(dir); ok {
			path = found
		}
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.NewConfigLoadError("environment", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.NewConfigInvalidError(describe(path), err)
	}

	applyDefaults(&cfg)
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigInvalidError(describe(path), err)
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewConfigLoadError(path, err)
	}
	if info.Size() > maxConfigFileSize {
		return errors.NewConfigLoadError(path, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.NewConfigLoadError(path, err)
	}

	var parser koanf.Parser = yaml.Parser()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parser = TOMLParser()
	}

	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return errors.NewConfigLoadError(path, err)
	}
	return nil
}

// envKey maps MERMAIDLINT_SECTION_FIELD_NAME to section.field_name. Variables
// without a section are ignored.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "." + parts[1]
}

func describe(path string) string {
	if path == "" {
		return "defaults and environment"
	}
	return path
}

// Marshal renders cfg as YAML. Secrets are omitted.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlv3.Marshal(cfg)
}
