package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// StrictParser extracts blocks from a full CommonMark parse. Only fenced code
// blocks whose first info-string word equals the language are returned, and an
// unterminated fence runs to the end of the document. Fences nested in lists
// and block quotes are found too.
type StrictParser struct {
	language string
	md       goldmark.Markdown
}

// NewStrictParser builds a parser for the given case-sensitive language tag.
func NewStrictParser(language string) *StrictParser {
	if language == "" {
		language = DefaultLanguage
	}
	return &StrictParser{language: language, md: goldmark.New()}
}

// Extract implements Extractor.
func (p *StrictParser) Extract(doc string) []Block {
	src := []byte(doc)
	root := p.md.Parser().Parse(text.NewReader(src))

	var found []candidate
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(fence.Language(src)) != p.language {
			return ast.WalkSkipChildren, nil
		}

		var b strings.Builder
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}
		found = append(found, candidate{
			offset: fenceOffset(src, fence),
			source: trimTrailing(b.String()),
		})
		return ast.WalkSkipChildren, nil
	})

	return newBlocks(doc, found)
}

// fenceOffset locates the opening fence line. goldmark keeps segments for the
// info string and the content lines, not for the fence itself.
func fenceOffset(src []byte, fence *ast.FencedCodeBlock) int {
	pos := -1
	if fence.Info != nil {
		pos = fence.Info.Segment.Start
	} else if fence.Lines().Len() > 0 {
		pos = fence.Lines().At(0).Start - 1
	}
	if pos < 0 {
		return 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}
