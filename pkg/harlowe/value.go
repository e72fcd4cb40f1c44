// value.go classifies raw macro-argument text into typed values.
package harlowe

import (
	"strconv"
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

// Value is the classified form of one macro argument. Translators switch on
// the concrete type instead of inspecting strings.
type Value interface {
	value()
}

// NumberValue is a numeric literal argument.
type NumberValue struct {
	N float64
}

// StringValue is a quoted string argument, quotes stripped.
type StringValue struct {
	S string
}

// BoolValue is a true/false keyword argument.
type BoolValue struct {
	B bool
}

// VariableValue is a sigil-prefixed variable argument. The sigil is stripped
// but its scope survives in Scope.
type VariableValue struct {
	Scope story.VarScope
	Name  string
}

// ExprValue is anything that matched no simpler classification. The raw text
// is kept verbatim for later structural parsing or opaque passthrough.
type ExprValue struct {
	Expr string
}

func (NumberValue) value()   {}
func (StringValue) value()   {}
func (BoolValue) value()     {}
func (VariableValue) value() {}
func (ExprValue) value()     {}

// Classify maps a raw argument substring to a Value. Checks run in a fixed
// order and the first match wins.
func Classify(raw string) Value {
	s := strings.TrimSpace(raw)

	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return StringValue{S: s[1 : len(s)-1]}
		}
	}
	if isNumeric(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return NumberValue{N: n}
		}
	}
	switch s {
	case "true":
		return BoolValue{B: true}
	case "false":
		return BoolValue{B: false}
	}
	if len(s) >= 2 && (s[0] == '$' || s[0] == '_') && isIdentifier(s[1:]) {
		scope := story.ScopeStory
		if s[0] == '_' {
			scope = story.ScopeTemporary
		}
		return VariableValue{Scope: scope, Name: s[1:]}
	}
	return ExprValue{Expr: s}
}

// Node converts a classified value into its syntax-tree form. Expression
// values go through the structural expression rules and degrade to
// RawExpression when nothing matches.
func (v NumberValue) Node() story.Node   { return story.Number(v.N) }
func (v StringValue) Node() story.Node   { return story.String(v.S) }
func (v BoolValue) Node() story.Node     { return story.Bool(v.B) }
func (v VariableValue) Node() story.Node { return &story.VariableRef{Scope: v.Scope, Name: v.Name} }
func (v ExprValue) Node() story.Node     { return parseExpression(v.Expr) }

// NodeOf dispatches Node() over the interface. Other dialect front ends use
// it to share the classifier and the expression rules.
func NodeOf(v Value) story.Node {
	return nodeOf(v)
}

// nodeOf dispatches Node() over the interface.
func nodeOf(v Value) story.Node {
	switch x := v.(type) {
	case NumberValue:
		return x.Node()
	case StringValue:
		return x.Node()
	case BoolValue:
		return x.Node()
	case VariableValue:
		return x.Node()
	case ExprValue:
		return x.Node()
	}
	return &story.RawExpression{Expression: ""}
}

// nodesOf converts a whole argument list.
func nodesOf(values []Value) []story.Node {
	out := make([]story.Node, 0, len(values))
	for _, v := range values {
		out = append(out, nodeOf(v))
	}
	return out
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	digits := 0
	dots := 0
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
