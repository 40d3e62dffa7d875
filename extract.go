package apiglot

import (
	"os"
	"strings"
)

// RegionPattern names the element whose blocks are cut out of a page
// before it is sent for translation.
type RegionPattern struct {
	Tag string
}

// TagPattern returns a RegionPattern for tag, falling back to DefaultExcludedTag.
func TagPattern(tag string) RegionPattern {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = DefaultExcludedTag
	}
	return RegionPattern{Tag: tag}
}

// ExtractExcludedRegions removes every <tag ...>...</tag> block from document.
//
// The document is scanned once, left to right. Tag names match ASCII
// case-insensitively and attributes on the opening tag are kept verbatim.
// A region ends at the first closing tag after its opening tag, so nested
// blocks of the same element are not supported: the inner closing tag ends
// the outer region. An opening tag with no closing tag after it is left in
// place.
func ExtractExcludedRegions(document string, pattern RegionPattern) ExtractionResult {
	result := ExtractionResult{Content: document, Removed: []string{}}
	if pattern.Tag == "" {
		return result
	}

	s := newRegionScanner(document, pattern.Tag)

	var b strings.Builder
	last := 0
	for {
		start, end, ok := s.next()
		if !ok {
			break
		}
		b.WriteString(document[last:start])
		result.Removed = append(result.Removed, document[start:end])
		last = end
	}

	if len(result.Removed) == 0 {
		return result
	}

	b.WriteString(document[last:])
	result.Content = b.String()
	return result
}

// ExtractFile reads path and extracts the regions matched by pattern.
// Read failures are returned as *ExtractError.
func ExtractFile(path string, pattern RegionPattern) (ExtractionResult, error) {
	data, err := os.ReadFile(path) // #nosec G304 - pages come from the configured pages directory
	if err != nil {
		return ExtractionResult{}, &ExtractError{Path: path, Cause: err}
	}
	return ExtractExcludedRegions(string(data), pattern), nil
}

// Reassemble appends the removed regions to the translated content, each
// separated by a blank line. Regions are not put back at their original
// offsets.
func Reassemble(translated string, removed []string) string {
	if len(removed) == 0 {
		return translated
	}
	parts := make([]string, 0, len(removed)+1)
	parts = append(parts, translated)
	parts = append(parts, removed...)
	return strings.Join(parts, "\n\n")
}

// regionScanner finds tag-delimited regions in a document.
type regionScanner struct {
	src   string
	lower string // ASCII-lowered copy of src, same byte offsets
	open  string // "<tag"
	close string // "</tag>"
	pos   int
	done  bool
}

func newRegionScanner(src, tag string) *regionScanner {
	tag = asciiLower(tag)
	return &regionScanner{
		src:   src,
		lower: asciiLower(src),
		open:  "<" + tag,
		close: "</" + tag + ">",
	}
}

// next returns the byte span of the next region.
func (s *regionScanner) next() (start, end int, ok bool) {
	for !s.done {
		i := strings.Index(s.lower[s.pos:], s.open)
		if i < 0 {
			s.done = true
			break
		}
		start = s.pos + i
		nameEnd := start + len(s.open)

		// "<styles>" or "<style-guide>" is another element.
		if nameEnd < len(s.lower) && !isTagBoundary(s.lower[nameEnd]) {
			s.pos = start + 1
			continue
		}

		gt := strings.IndexByte(s.lower[nameEnd:], '>')
		if gt < 0 {
			// No opening tag after this one can be completed either.
			s.done = true
			break
		}
		bodyStart := nameEnd + gt + 1

		c := strings.Index(s.lower[bodyStart:], s.close)
		if c < 0 {
			// Unclosed: the rest of the document stays as it is.
			s.done = true
			break
		}
		end = bodyStart + c + len(s.close)
		s.pos = end
		return start, end, true
	}
	return 0, 0, false
}

func isTagBoundary(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
