// expression.go applies the structural expression rules to otherwise
// unclassified argument text. There is deliberately no full expression
// grammar here: a handful of binary/logical/unary shapes are recognized and
// everything else is preserved verbatim as a RawExpression.
package harlowe

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

// logicalOps and comparisonOps are tried in order; the spaced forms keep
// word operators from matching inside identifiers.
var logicalOps = []string{" and ", " or "}

var comparisonOps = []string{" is not ", " is ", " contains ", " <= ", " >= ", " < ", " > "}

var arithmeticOps = []string{" + ", " - ", " * ", " / "}

// parseExpression turns raw expression text into the best structural node
// available, falling back to RawExpression.
func parseExpression(raw string) story.Node {
	s := strings.TrimSpace(raw)
	if s == "" {
		return &story.RawExpression{Expression: ""}
	}

	for _, op := range logicalOps {
		if i := indexTop(s, op); i >= 0 {
			return &story.LogicalOp{
				Operator: strings.TrimSpace(op),
				Left:     parseExpression(s[:i]),
				Right:    parseExpression(s[i+len(op):]),
			}
		}
	}
	for _, op := range comparisonOps {
		if i := indexTop(s, op); i >= 0 {
			return &story.BinaryOp{
				Operator: strings.TrimSpace(op),
				Left:     parseExpression(s[:i]),
				Right:    parseExpression(s[i+len(op):]),
			}
		}
	}
	for _, op := range arithmeticOps {
		if i := indexTop(s, op); i >= 0 {
			return &story.BinaryOp{
				Operator: strings.TrimSpace(op),
				Left:     parseExpression(s[:i]),
				Right:    parseExpression(s[i+len(op):]),
			}
		}
	}
	if rest, ok := strings.CutPrefix(s, "not "); ok {
		return &story.UnaryOp{Operator: "not", Operand: parseExpression(rest)}
	}

	if n, ok := resolvePossessive(s); ok {
		return n
	}

	// A primitive that reached this point classifies directly; anything
	// still unrecognized stays opaque.
	switch v := Classify(s).(type) {
	case NumberValue:
		return v.Node()
	case StringValue:
		return v.Node()
	case BoolValue:
		return v.Node()
	case VariableValue:
		return v.Node()
	}
	return &story.RawExpression{Expression: s}
}
