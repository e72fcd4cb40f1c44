// delim.go holds the string-literal-aware delimiter scanning shared by the
// macro scanner, the argument splitter and the expression rules. Quoted
// spans (single or double, with backslash escapes) never contribute to
// delimiter depth or separator matches. An unpaired apostrophe stays
// ordinary text so possessive expressions scan normally.
package harlowe

// stringTracker follows quoted-string state one byte at a time.
type stringTracker struct {
	quote byte // active quote char, 0 when outside a string
}

// step feeds one byte at position i of s and reports whether the byte is
// inside (or part of) a string literal.
func (t *stringTracker) step(s string, i int) bool {
	c := s[i]
	if t.quote != 0 {
		if c == '\\' {
			return true
		}
		if c == t.quote && !escaped(s, i) {
			t.quote = 0
		}
		return true
	}
	if c == '"' {
		t.quote = c
		return true
	}
	// A lone apostrophe is dialect syntax (possessives, contractions), not
	// a string opener. Enter single-quote state only when the span still
	// holds a closing quote.
	if c == '\'' && hasClosingQuote(s, i, '\'') {
		t.quote = c
		return true
	}
	return false
}

// hasClosingQuote reports whether an unescaped q appears after s[i].
func hasClosingQuote(s string, i int, q byte) bool {
	for j := i + 1; j < len(s); j++ {
		if s[j] == q && !escaped(s, j) {
			return true
		}
	}
	return false
}

// escaped reports whether s[i] is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// matchDelimiter finds the position of the close byte matching the open
// byte at openPos, honoring nesting and skipping string literals. Returns
// ok=false when the text ends before the delimiter closes.
func matchDelimiter(s string, openPos int, open, close byte) (int, bool) {
	var tr stringTracker
	depth := 0
	for i := openPos; i < len(s); i++ {
		if tr.step(s, i) {
			continue
		}
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// splitTop splits s on sep at nesting depth zero, outside string literals.
// Parentheses and square brackets both count toward depth.
func splitTop(s string, sep byte) []string {
	var parts []string
	var tr stringTracker
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		if tr.step(s, i) {
			continue
		}
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexTop returns the first index of sub in s at nesting depth zero and
// outside string literals, or -1.
func indexTop(s, sub string) int {
	if sub == "" {
		return -1
	}
	var tr stringTracker
	depth := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if tr.step(s, i) {
			continue
		}
		switch s[i] {
		case '(', '[':
			depth++
			continue
		case ')', ']':
			depth--
			continue
		}
		if depth == 0 && s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
