// possessive.go resolves the dialect's possessive addressing syntax:
// $x's length, $x's keys, $x's 1st, and the generic $x's property form.
package harlowe

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

const possessiveMark = "'s "

// resolvePossessive recognizes `$name's rest` (and `_name's rest`) and maps
// the recognized property names to their dedicated node shapes. Ordinal
// positions are 1-based in source and converted to 0-based here; this is
// the only place that conversion happens.
func resolvePossessive(expr string) (story.Node, bool) {
	s := strings.TrimSpace(expr)
	i := strings.Index(s, possessiveMark)
	if i < 0 {
		return nil, false
	}
	owner, ok := Classify(s[:i]).(VariableValue)
	if !ok {
		return nil, false
	}
	target := owner.Node()
	rest := strings.TrimSpace(s[i+len(possessiveMark):])
	if rest == "" {
		return nil, false
	}

	switch rest {
	case "length":
		return &story.LengthOf{Target: target}, true
	case "keys":
		return &story.DatamapKeys{Target: target}, true
	case "values":
		return &story.DatamapValues{Target: target}, true
	case "last":
		return &story.ArrayLast{Target: target}, true
	}

	if idx, ok := ordinalIndex(rest); ok {
		return &story.ArrayAccess{Target: target, Index: story.Number(float64(idx))}, true
	}

	return &story.PropertyAccess{Target: target, Property: rest}, true
}

// ordinalIndex parses ordinals like 1st, 2nd, 22nd into a 0-based index.
// Only the leading digit run matters; the suffix text is not validated
// against the digit, so "1nd" is accepted the way the dialect accepts it.
func ordinalIndex(s string) (int, bool) {
	n := 0
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 || n == 0 {
		return 0, false
	}
	switch s[digits:] {
	case "st", "nd", "rd", "th":
		return n - 1, true
	}
	return 0, false
}
