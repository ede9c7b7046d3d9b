// Package document loads a Markdown file and the validation directives in its
// frontmatter.
package document

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/frontmatter"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
)

// Directives are per-document switches. They can only turn behavior on; a
// document cannot switch off what the command line asked for.
type Directives struct {
	KeepArtifacts bool `yaml:"keep_artifacts"`
	Strict        bool `yaml:"strict"`
}

// Merge ORs d into the given flags.
func (d Directives) Merge(keep, strict bool) (bool, bool) {
	return keep || d.KeepArtifacts, strict || d.Strict
}

// Document is a loaded Markdown file. Text is always the full raw content,
// frontmatter included, so reported line numbers match the file.
type Document struct {
	Path       string
	Text       string
	Directives Directives
}

type envelope struct {
	Mermaidlint Directives `yaml:"mermaidlint"`
}

// Load reads path. Read failures are fatal. Malformed frontmatter is logged
// and leaves the directives zero.
func Load(path string, logger *log.Logger) (*Document, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.NewFileReadError(path, err)
	}

	doc := &Document{Path: path, Text: string(data)}

	d, err := ParseDirectives(data)
	if err != nil {
		logger.Warn("ignoring document frontmatter", "path", path, "error", err.Error())
	}
	doc.Directives = d

	logger.Debug("document loaded", "path", path, "bytes", len(data), "keep_artifacts", d.KeepArtifacts, "strict", d.Strict)
	return doc, nil
}

// ParseDirectives reads the mermaidlint key of a leading frontmatter block.
// A document without frontmatter has zero directives and no error.
func ParseDirectives(source []byte) (Directives, error) {
	var env envelope
	if _, err := frontmatter.Parse(bytes.NewReader(source), &env); err != nil {
		return Directives{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return env.Mermaidlint, nil
}
