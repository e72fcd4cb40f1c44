// hooks.go extracts named hook definitions before the main macro scan so
// the scanner never has to disambiguate hook-name delimiters from other
// bracket uses.
package harlowe

import "strings"

// namedHook is one extracted definition, raw content not yet parsed.
type namedHook struct {
	name    string
	content string
	hidden  bool
}

// extractNamedHooks removes every named hook definition from text and
// returns the remaining text plus the definitions in source order.
// Recognized forms, nub on either side:
//
//	|name>[content]   |name)[content]   (hidden)
//	[content]<name|   [content](name|   (hidden)
//
// Malformed definitions (no matching bracket, bad identifier) are left in
// place as ordinary text.
func extractNamedHooks(text string) (string, []namedHook) {
	var hooks []namedHook
	var out strings.Builder
	pos := 0
	keep := 0 // start of the span not yet copied to out

	flush := func(end int) {
		out.WriteString(text[keep:end])
	}

	var tr stringTracker
	for pos < len(text) {
		// Hook-shaped text inside a string literal stays macro argument
		// text; only prose-level definitions are extracted.
		if tr.step(text, pos) {
			pos++
			continue
		}
		switch text[pos] {
		case '|':
			if h, end, ok := scanLeftNamedHook(text, pos); ok {
				flush(pos)
				hooks = append(hooks, h)
				pos = end
				keep = pos
				continue
			}
		case '[':
			// Skip link openers; they are handled by the main scan.
			if strings.HasPrefix(text[pos:], "[[") {
				if close := strings.Index(text[pos:], "]]"); close >= 0 {
					pos += close + 2
					continue
				}
			}
			if h, end, ok := scanRightNamedHook(text, pos); ok {
				flush(pos)
				hooks = append(hooks, h)
				pos = end
				keep = pos
				continue
			}
		}
		pos++
	}
	flush(len(text))
	return out.String(), hooks
}

// scanLeftNamedHook matches |name>[...] or |name)[...] starting at the nub.
func scanLeftNamedHook(text string, pos int) (namedHook, int, bool) {
	i := pos + 1
	start := i
	for i < len(text) && isHookNameChar(text[i]) {
		i++
	}
	if i == start || i >= len(text) {
		return namedHook{}, 0, false
	}
	hidden := false
	switch text[i] {
	case '>':
	case ')':
		hidden = true
	default:
		return namedHook{}, 0, false
	}
	name := text[start:i]
	i++
	if i >= len(text) || text[i] != '[' {
		return namedHook{}, 0, false
	}
	close, ok := matchDelimiter(text, i, '[', ']')
	if !ok {
		return namedHook{}, 0, false
	}
	return namedHook{name: name, content: text[i+1 : close], hidden: hidden}, close + 1, true
}

// scanRightNamedHook matches [...]<name| or [...](name| starting at the
// opening bracket.
func scanRightNamedHook(text string, pos int) (namedHook, int, bool) {
	close, ok := matchDelimiter(text, pos, '[', ']')
	if !ok {
		return namedHook{}, 0, false
	}
	i := close + 1
	if i >= len(text) {
		return namedHook{}, 0, false
	}
	hidden := false
	switch text[i] {
	case '<':
	case '(':
		hidden = true
	default:
		return namedHook{}, 0, false
	}
	i++
	start := i
	for i < len(text) && isHookNameChar(text[i]) {
		i++
	}
	if i == start || i >= len(text) || text[i] != '|' {
		return namedHook{}, 0, false
	}
	return namedHook{
		name:    text[start:i],
		content: text[pos+1 : close],
		hidden:  hidden,
	}, i + 1, true
}

func isHookNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}
