package astro

import "strings"

// stripComments blanks out // and /* */ comments outside string literals.
// Regular expression literals are replaced by null so quotes inside them
// are not read as strings.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	var prev byte // last non-space byte written
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isQuote(c):
			end := skipString(src, i)
			b.WriteString(src[i:end])
			prev = c
			i = end
			continue
		case strings.HasPrefix(src[i:], "//"):
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				return b.String()
			}
			i += nl
			continue
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 4
			continue
		case c == '/' && regexAllowed(prev):
			if end := skipRegex(src, i); end > 0 {
				b.WriteString("null")
				prev = 'l'
				i = end
				continue
			}
		}
		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
		i++
	}
	return b.String()
}

// regexAllowed reports whether a '/' after prev starts a regular expression
// rather than a division.
func regexAllowed(prev byte) bool {
	return prev == 0 || strings.IndexByte("(,=:[!&|?;{}+-*%<>~^", prev) >= 0
}

// skipRegex returns the offset after the regular expression literal starting
// at s[i], flags included, or -1 when the line ends before it is closed.
func skipRegex(s string, i int) int {
	inClass := false
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; {
		case c == '\\':
			j++
		case c == '\n':
			return -1
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			j++
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			return j
		}
	}
	return -1
}

// findKey returns the offset just after the ':' of property key, or -1.
// With depth >= 0 only properties at that bracket depth of s count.
func findKey(s, key string, depth int) int {
	d := 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isQuote(c):
			end := skipString(s, i)
			if v, _, ok := readString(s, i); ok && v == key && (depth < 0 || d == depth) {
				if j := skipSpace(s, end); j < len(s) && s[j] == ':' {
					return j + 1
				}
			}
			i = end
		case c == '{' || c == '[' || c == '(':
			d++
			i++
		case c == '}' || c == ']' || c == ')':
			d--
			i++
		case isIdentStart(c) && (i == 0 || !isIdentPart(s[i-1])):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			if s[i:j] == key && (depth < 0 || d == depth) {
				if k := skipSpace(s, j); k < len(s) && s[k] == ':' {
					return k + 1
				}
			}
			i = j
		default:
			i++
		}
	}
	return -1
}

// matchBracket returns the offset of the bracket closing s[open], or -1.
func matchBracket(s string, open int) int {
	d := 0
	for i := open; i < len(s); {
		c := s[i]
		switch {
		case isQuote(c):
			i = skipString(s, i)
			continue
		case c == '{' || c == '[' || c == '(':
			d++
		case c == '}' || c == ']' || c == ')':
			d--
			if d == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// splitTopLevel splits a list body on commas outside brackets and strings.
// Empty elements (trailing commas) are dropped.
func splitTopLevel(s string) []string {
	var parts []string
	d, last := 0, 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isQuote(c):
			i = skipString(s, i)
			continue
		case c == '{' || c == '[' || c == '(':
			d++
		case c == '}' || c == ']' || c == ')':
			d--
		case c == ',' && d == 0:
			if p := strings.TrimSpace(s[last:i]); p != "" {
				parts = append(parts, p)
			}
			last = i + 1
		}
		i++
	}
	if p := strings.TrimSpace(s[last:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// readString decodes the string literal starting at s[i].
func readString(s string, i int) (string, int, bool) {
	if i >= len(s) || !isQuote(s[i]) {
		return "", i, false
	}
	quote := s[i]
	var b strings.Builder
	for j := i + 1; j < len(s); j++ {
		switch c := s[j]; {
		case c == '\\' && j+1 < len(s):
			j++
			b.WriteByte(s[j])
		case c == quote:
			return b.String(), j + 1, true
		default:
			b.WriteByte(c)
		}
	}
	return "", len(s), false
}

// skipString returns the offset after the string literal starting at s[i].
func skipString(s string, i int) int {
	_, end, _ := readString(s, i)
	return end
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
