// translators_core.go holds the baseline macro set: assignment, branching,
// loops, navigation, data literals and randomness.
package harlowe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

func registerCore(r *Registry) {
	r.Register("set", translateSet)
	r.Register("put", translatePut)
	r.Register("if", translateIf)
	r.Register("else-if", translateElsif)
	r.Register("elseif", translateElsif)
	r.Register("else", translateElse)
	r.Register("unless", translateUnless)
	r.Register("for", translateFor)
	r.Register("link", translateLink)
	r.Register("link-reveal", translateLink)
	r.Register("link-goto", translateLinkGoto)
	r.Register("go-to", translateGoto)
	r.Register("goto", translateGoto)
	r.Register("a", translateArray)
	r.Register("array", translateArray)
	r.Register("dm", translateDatamap)
	r.Register("datamap", translateDatamap)
	r.Register("ds", translateDataset)
	r.Register("dataset", translateDataset)
	r.Register("either", translateEither)
	r.Register("random", translateRandom)
	r.Register("range", translateRange)
	r.Register("print", translatePrint)
}

// translateSet handles (set: $var to value). A missing or malformed target
// is a hard error: an assignment with nothing to assign to is a
// translation-breaking defect, unlike an unknown macro.
func translateSet(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) == 0 {
		return story.Errorf("(set:)", "missing assignment target")
	}
	ev, ok := args[0].(ExprValue)
	if !ok {
		return story.Errorf(valueText(args[0]), "assignment needs the form $variable to value")
	}
	i := indexTop(ev.Expr, " to ")
	if i < 0 {
		return story.Errorf(ev.Expr, "assignment needs the form $variable to value")
	}
	v, ok := Classify(ev.Expr[:i]).(VariableValue)
	if !ok {
		return story.Errorf(ev.Expr, "assignment target %q is not a variable", strings.TrimSpace(ev.Expr[:i]))
	}
	return &story.Assignment{
		Scope:    v.Scope,
		Variable: v.Name,
		Operator: "to",
		Value:    parseExpression(ev.Expr[i+len(" to "):]),
	}
}

// translatePut handles the reversed form (put: value into $var).
func translatePut(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) == 0 {
		return story.Errorf("(put:)", "missing assignment target")
	}
	ev, ok := args[0].(ExprValue)
	if !ok {
		return story.Errorf(valueText(args[0]), "put needs the form value into $variable")
	}
	i := indexTop(ev.Expr, " into ")
	if i < 0 {
		return story.Errorf(ev.Expr, "put needs the form value into $variable")
	}
	v, ok := Classify(ev.Expr[i+len(" into "):]).(VariableValue)
	if !ok {
		return story.Errorf(ev.Expr, "put target %q is not a variable", strings.TrimSpace(ev.Expr[i+len(" into "):]))
	}
	return &story.Assignment{
		Scope:    v.Scope,
		Variable: v.Name,
		Operator: "into",
		Value:    parseExpression(ev.Expr[:i]),
	}
}

func translateIf(ctx *Context, args []Value, hook *Hook) story.Node {
	return &story.Conditional{
		Condition: conditionOf(args),
		Body:      ctx.ParseHook(hook),
	}
}

func translateElsif(ctx *Context, args []Value, hook *Hook) story.Node {
	return &story.Elsif{
		Condition: conditionOf(args),
		Body:      ctx.ParseHook(hook),
	}
}

func translateElse(ctx *Context, _ []Value, hook *Hook) story.Node {
	return &story.Else{Body: ctx.ParseHook(hook)}
}

// translateUnless inverts its condition so downstream consumers only ever
// see plain conditionals.
func translateUnless(ctx *Context, args []Value, hook *Hook) story.Node {
	return &story.Conditional{
		Condition: &story.UnaryOp{Operator: "not", Operand: conditionOf(args)},
		Body:      ctx.ParseHook(hook),
	}
}

// forPattern matches the loop header after argument re-joining:
// each _var, ...$collection (the comma is optional so both the split and
// the combined argument form land on the same ForLoop node).
var forPattern = regexp.MustCompile(`^each\s+([$_][A-Za-z_][A-Za-z0-9_]*)\s*,?\s*\.\.\.(\S.*)$`)

func translateFor(ctx *Context, args []Value, hook *Hook) story.Node {
	raw := make([]string, 0, len(args))
	for _, a := range args {
		raw = append(raw, valueText(a))
	}
	combined := strings.TrimSpace(strings.Join(raw, ", "))
	m := forPattern.FindStringSubmatch(combined)
	if m == nil {
		return story.Errorf(combined, "for needs a loop variable and a ...collection")
	}
	return &story.ForLoop{
		Variable:   m[1][1:],
		Collection: parseExpression(m[2]),
		Body:       ctx.ParseHook(hook),
	}
}

func translateLink(ctx *Context, args []Value, hook *Hook) story.Node {
	if len(args) == 0 {
		return &story.Warning{Message: "link macro without link text", MacroName: "link", HookText: hook.text()}
	}
	return &story.Choice{
		Text: valueText(args[0]),
		Body: ctx.ParseHook(hook),
	}
}

func translateLinkGoto(ctx *Context, args []Value, hook *Hook) story.Node {
	if len(args) == 0 {
		return &story.Warning{Message: "link-goto without a destination", MacroName: "link-goto", HookText: hook.text()}
	}
	text := valueText(args[0])
	dest := text
	if len(args) > 1 {
		dest = valueText(args[1])
	}
	return &story.Choice{
		Text:        text,
		Destination: dest,
		Body:        ctx.ParseHook(hook),
	}
}

func translateGoto(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) == 0 {
		return &story.Warning{Message: "go-to without a destination", MacroName: "go-to"}
	}
	return &story.Goto{Destination: valueText(args[0])}
}

func translateArray(_ *Context, args []Value, _ *Hook) story.Node {
	return &story.ArrayLiteral{Items: nodesOf(args)}
}

// translateDatamap builds a (dm:) literal. Keys and values alternate, so an
// odd argument count is a hard error.
func translateDatamap(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args)%2 != 0 {
		return story.Errorf("(dm:)", "datamap needs an even number of arguments, got %d", len(args))
	}
	entries := make([]story.TableEntry, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		entries = append(entries, story.TableEntry{
			Key:   nodeOf(args[i]),
			Value: nodeOf(args[i+1]),
		})
	}
	return &story.TableLiteral{Entries: entries}
}

func translateDataset(_ *Context, args []Value, _ *Hook) story.Node {
	return &story.DatasetLiteral{Items: nodesOf(args)}
}

// translateEither supports both (either: a, b, c) and the spread form
// (either: ...$options).
func translateEither(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) == 1 {
		if ev, ok := args[0].(ExprValue); ok {
			if rest, found := strings.CutPrefix(ev.Expr, "..."); found {
				return &story.RandomChoice{
					Options: []story.Node{parseExpression(rest)},
					Spread:  true,
				}
			}
		}
	}
	return &story.RandomChoice{Options: nodesOf(args)}
}

func translateRandom(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) != 2 {
		return story.Errorf("(random:)", "random needs exactly two bounds, got %d", len(args))
	}
	return &story.RandomNumber{Min: nodeOf(args[0]), Max: nodeOf(args[1])}
}

func translateRange(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) != 2 {
		return story.Errorf("(range:)", "range needs exactly two bounds, got %d", len(args))
	}
	return &story.Range{Min: nodeOf(args[0]), Max: nodeOf(args[1])}
}

// translatePrint emits the value's own node: an expression appearing in the
// output stream means "display this value", so no wrapper variant is needed.
func translatePrint(_ *Context, args []Value, _ *Hook) story.Node {
	if len(args) == 0 {
		return &story.Warning{Message: "print macro without a value", MacroName: "print"}
	}
	return nodeOf(args[0])
}

// conditionOf takes the first argument as the branch condition; a missing
// condition degrades to an empty raw expression rather than failing.
func conditionOf(args []Value) story.Node {
	if len(args) == 0 {
		return &story.RawExpression{Expression: ""}
	}
	return nodeOf(args[0])
}

// valueText renders a classified value back to plain text for fields that
// are strings in the node set (link text, destinations, loop headers).
func valueText(v Value) string {
	switch x := v.(type) {
	case StringValue:
		return x.S
	case NumberValue:
		return strconv.FormatFloat(x.N, 'g', -1, 64)
	case BoolValue:
		return strconv.FormatBool(x.B)
	case VariableValue:
		if x.Scope == story.ScopeTemporary {
			return "_" + x.Name
		}
		return "$" + x.Name
	case ExprValue:
		return x.Expr
	}
	return ""
}
