// Package extract locates fenced diagram blocks inside Markdown text.
package extract

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// DefaultLanguage is the info-string tag that marks a Mermaid fence.
const DefaultLanguage = "mermaid"

// Block is one diagram source found in a document.
type Block struct {
	// Index is the 1-based discovery position.
	Index int `json:"index" yaml:"index"`
	// Source is the fenced content with trailing whitespace trimmed.
	Source string `json:"source" yaml:"source"`
	// Line is the 1-based line of the opening fence.
	Line int `json:"line" yaml:"line"`
	// Digest is the BLAKE3 hex digest of Source and the block's identity key.
	Digest string `json:"digest" yaml:"digest"`
}

// Extractor produces the ordered, deduplicated block list for a document.
type Extractor interface {
	Extract(text string) []Block
}

// Digest returns the hex BLAKE3 digest of a block source.
func Digest(source string) string {
	sum := blake3.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// candidate is a block before indices are assigned.
type candidate struct {
	offset int
	source string
}

func newBlocks(text string, found []candidate) []Block {
	blocks := make([]Block, 0, len(found))
	for i, c := range found {
		blocks = append(blocks, Block{
			Index:  i + 1,
			Source: c.source,
			Line:   strings.Count(text[:c.offset], "\n") + 1,
			Digest: Digest(c.source),
		})
	}
	return blocks
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\r\n\f\v")
}
