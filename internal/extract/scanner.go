package extract

import (
	"regexp"
	"sort"
)

// FenceScanner finds blocks with two scans merged by position and content:
//
//  1. closed fences: an opening line ("```" + language + anything) up to the
//     first following line that is exactly "```";
//  2. loose fences: the same opening line up to the next "```" anywhere, or to
//     end of document when no fence follows.
//
// Pass 2 only contributes blocks that open outside every pass 1 block and
// whose trimmed content pass 1 did not already produce.
type FenceScanner struct {
	closed *regexp.Regexp
	loose  *regexp.Regexp
}

// NewFenceScanner builds a scanner for the given case-sensitive language tag.
func NewFenceScanner(language string) *FenceScanner {
	if language == "" {
		language = DefaultLanguage
	}
	open := "(?m)^```" + regexp.QuoteMeta(language) + "[^\n]*\n"
	return &FenceScanner{
		closed: regexp.MustCompile(open + `((?s:.*?))\n` + "```" + `[ \t\r]*(?:\n|\z)`),
		loose:  regexp.MustCompile(open + `((?s:.*?))(?:` + "```" + `|\z)`),
	}
}

// Extract implements Extractor.
func (s *FenceScanner) Extract(text string) []Block {
	var found []candidate
	var claimed [][2]int
	seen := make(map[string]struct{})

	for _, m := range s.closed.FindAllStringSubmatchIndex(text, -1) {
		source := trimTrailing(text[m[2]:m[3]])
		found = append(found, candidate{offset: m[0], source: source})
		claimed = append(claimed, [2]int{m[0], m[1]})
		seen[Digest(source)] = struct{}{}
	}

	for _, m := range s.loose.FindAllStringSubmatchIndex(text, -1) {
		if within(claimed, m[0]) {
			continue
		}
		source := trimTrailing(text[m[2]:m[3]])
		key := Digest(source)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		found = append(found, candidate{offset: m[0], source: source})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].offset < found[j].offset
	})

	return newBlocks(text, found)
}

// within reports whether offset falls inside one of the [start, end) spans.
func within(spans [][2]int, offset int) bool {
	for _, sp := range spans {
		if offset >= sp[0] && offset < sp[1] {
			return true
		}
	}
	return false
}
