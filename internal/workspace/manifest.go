package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is written at the workspace root.
const ManifestFile = "manifest.yaml"

// Manifest describes what a kept workspace contains.
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	Document  string          `yaml:"document,omitempty"`
	Runner    string          `yaml:"runner,omitempty"`
	Timestamp time.Time       `yaml:"timestamp"`
	Blocks    []ManifestEntry `yaml:"blocks"`
}

// ManifestEntry is one block's slot and outcome.
type ManifestEntry struct {
	Index     int    `yaml:"index"`
	Line      int    `yaml:"line"`
	Digest    string `yaml:"digest"`
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Rendered  bool   `yaml:"rendered"`
	Succeeded bool   `yaml:"succeeded"`
	ExitCode  int    `yaml:"exit_code,omitempty"`
}

// WriteManifest stores m as YAML in the workspace root.
func (w *Workspace) WriteManifest(m *Manifest) error {
	if m.RunID == "" {
		m.RunID = w.RunID
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(w.Root, ManifestFile), data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
