package config

import (
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/mermaidlint/internal/gitrepo"
)

// FileNames are tried, in order, in every searched directory.
var FileNames = []string{".mermaidlint.yaml", ".mermaidlint.yml", ".mermaidlint.toml"}

// Discover searches for a config file starting at dir.
// Priority: dir -> parent dirs (stopping at the git worktree root) -> home dir.
func Discover(dir string) (string, bool) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	stop := ""
	if root, err := gitrepo.Root(start); err == nil {
		stop = filepath.Clean(root)
	}

	for d := start; ; {
		if path, ok := findIn(d); ok {
			return path, true
		}
		if d == stop {
			break
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		if path, ok := findIn(home); ok {
			return path, true
		}
	}
	return "", false
}

func findIn(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
