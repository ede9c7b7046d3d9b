package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sources(blocks []Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Source)
	}
	return out
}

func TestFenceScannerExtract(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "single block",
			doc:  "# Title\n\n```mermaid\ngraph TD; A-->B;\n```\n",
			want: []string{"graph TD; A-->B;"},
		},
		{
			name: "no blocks",
			doc:  "# Title\n\nJust prose.\n\n```go\nfmt.Println()\n```\n",
			want: []string{},
		},
		{
			name: "empty document",
			doc:  "",
			want: []string{},
		},
		{
			name: "trailing annotation on the opening line is ignored",
			doc:  "```mermaid title=\"flow\"\nflowchart LR\n  a --> b\n```\n",
			want: []string{"flowchart LR\n  a --> b"},
		},
		{
			name: "language tag is case sensitive",
			doc:  "```Mermaid\ngraph TD\n```\n",
			want: []string{},
		},
		{
			name: "multiple blocks keep document order",
			doc:  "```mermaid\nA\n```\n\ntext\n\n```mermaid\nB\n```\n",
			want: []string{"A", "B"},
		},
		{
			name: "closing fence without preceding newline is counted once",
			doc:  "intro\n\n```mermaid\ngraph TD\n  A-->B```",
			want: []string{"graph TD\n  A-->B"},
		},
		{
			name: "closing fence at end of document without newline",
			doc:  "```mermaid\nsequenceDiagram\n  A->>B: hi\n```",
			want: []string{"sequenceDiagram\n  A->>B: hi"},
		},
		{
			name: "unterminated block runs to end of document",
			doc:  "```mermaid\nA\n```\n\n```mermaid\npie\n  \"a\": 1\n",
			want: []string{"A", "pie\n  \"a\": 1"},
		},
		{
			name: "whitespace only block is an empty entry",
			doc:  "```mermaid\n   \n```\n",
			want: []string{""},
		},
		{
			name: "trailing whitespace is trimmed",
			doc:  "```mermaid\ngraph TD   \n\n\n```\n",
			want: []string{"graph TD"},
		},
		{
			name: "crlf line endings",
			doc:  "```mermaid\r\ngraph TD\r\n```\r\n",
			want: []string{"graph TD"},
		},
		{
			name: "identical blocks in the closed pass are both kept",
			doc:  "```mermaid\nA\n```\n```mermaid\nA\n```\n",
			want: []string{"A", "A"},
		},
		{
			name: "unterminated fence before a closed one reads to the closing line",
			doc:  "```mermaid\nA\n\n```mermaid\nB\n```\n",
			want: []string{"A\n\n```mermaid\nB"},
		},
		{
			name: "opening fence inside a closed block is content",
			doc:  "```mermaid\nA\n```x\n```mermaid\nB\n```\n",
			want: []string{"A\n```x\n```mermaid\nB"},
		},
		{
			name: "loose block after a closed one is still recovered",
			doc:  "```mermaid\nA\n```\n\n```mermaid\nB```",
			want: []string{"A", "B"},
		},
		{
			name: "fence must start the line",
			doc:  "see ```mermaid\nA\n```\n",
			want: []string{},
		},
	}

	scanner := NewFenceScanner(DefaultLanguage)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanner.Extract(tt.doc)
			assert.Equal(t, tt.want, sources(got))
		})
	}
}

func TestFenceScannerIndicesAndLines(t *testing.T) {
	doc := "# Doc\n\n```mermaid\nA\n```\n\n```mermaid\nB\n```\n"
	blocks := NewFenceScanner("").Extract(doc)

	require.Len(t, blocks, 2)
	assert.Equal(t, 1, blocks[0].Index)
	assert.Equal(t, 3, blocks[0].Line)
	assert.Equal(t, 2, blocks[1].Index)
	assert.Equal(t, 7, blocks[1].Line)
	assert.Equal(t, Digest("A"), blocks[0].Digest)
	assert.NotEqual(t, blocks[0].Digest, blocks[1].Digest)
}

func TestFenceScannerClosingLineWins(t *testing.T) {
	// A bare fence glued to content does not end the block; the next
	// fence-only line does, and the shorter reading is not added.
	doc := "```mermaid\nA```\nB\n```\n"
	blocks := NewFenceScanner(DefaultLanguage).Extract(doc)

	require.Len(t, blocks, 1)
	assert.Equal(t, "A```\nB", blocks[0].Source)
	assert.Equal(t, 1, blocks[0].Line)
}

func TestFenceScannerCustomLanguage(t *testing.T) {
	doc := "```mmd\ngraph TD\n```\n```mermaid\nother\n```\n"
	blocks := NewFenceScanner("mmd").Extract(doc)

	require.Len(t, blocks, 1)
	assert.Equal(t, "graph TD", blocks[0].Source)
}

func TestFenceScannerIsDeterministic(t *testing.T) {
	doc := "```mermaid\nA\n```\n```mermaid\nB```"
	scanner := NewFenceScanner(DefaultLanguage)

	assert.Equal(t, scanner.Extract(doc), scanner.Extract(doc))
}

func TestDigest(t *testing.T) {
	assert.Len(t, Digest(""), 64)
	assert.Equal(t, Digest("graph TD"), Digest("graph TD"))
	assert.NotEqual(t, Digest("graph TD"), Digest("graph LR"))
}
