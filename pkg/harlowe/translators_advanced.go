// translators_advanced.go holds the hook-mutation and live/event macro set.
package harlowe

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

func registerAdvanced(r *Registry) {
	r.Register("replace", hookUpdateTranslator(story.HookReplace))
	r.Register("append", hookUpdateTranslator(story.HookAppend))
	r.Register("prepend", hookUpdateTranslator(story.HookPrepend))
	r.Register("show", hookVisibilityTranslator(story.HookShow))
	r.Register("hide", hookVisibilityTranslator(story.HookHide))
	r.Register("live", translateLive)
	r.Register("event", translateEvent)
	r.Register("stop", translateStop)
}

// hookRef extracts the target name from a ?name hook-reference argument.
func hookRef(args []Value) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	ev, ok := args[0].(ExprValue)
	if !ok {
		return "", false
	}
	name, found := strings.CutPrefix(ev.Expr, "?")
	if !found || name == "" {
		return "", false
	}
	return name, true
}

// hookUpdateTranslator builds the translator for (replace:), (append:) and
// (prepend:). A missing ?hook reference is a hard error: the mutation has
// no target.
func hookUpdateTranslator(op story.HookOp) Translator {
	return func(ctx *Context, args []Value, hook *Hook) story.Node {
		name, ok := hookRef(args)
		if !ok {
			return story.Errorf(string(op), "%s needs a ?hook reference", op)
		}
		return &story.HookUpdate{
			Operation: op,
			HookName:  name,
			Content:   ctx.ParseHook(hook),
		}
	}
}

func hookVisibilityTranslator(op story.HookOp) Translator {
	return func(_ *Context, args []Value, _ *Hook) story.Node {
		name, ok := hookRef(args)
		if !ok {
			return story.Errorf(string(op), "%s needs a ?hook reference", op)
		}
		return &story.HookVisibility{Operation: op, HookName: name}
	}
}

// liveAdvisory is attached to every live/event node: the conversion is
// structurally complete but the continuous behavior needs a runtime, which
// static conversion cannot supply.
func liveAdvisory(what string) *story.Advisory {
	return &story.Advisory{
		Severity: story.SeverityWarning,
		Message:  what + " requires a live runtime; static conversion preserves structure only",
	}
}

func translateLive(ctx *Context, args []Value, hook *Hook) story.Node {
	var interval story.Node
	if len(args) > 0 {
		interval = nodeOf(args[0])
	}
	return &story.LiveUpdate{
		Interval: interval,
		Body:     ctx.ParseHook(hook),
		Advisory: liveAdvisory("live update"),
	}
}

func translateEvent(ctx *Context, args []Value, hook *Hook) story.Node {
	cond := ""
	if len(args) > 0 {
		cond = strings.TrimSpace(strings.TrimPrefix(valueText(args[0]), "when "))
	}
	return &story.EventListener{
		Condition: parseExpression(cond),
		Body:      ctx.ParseHook(hook),
		Advisory:  liveAdvisory("event listener"),
	}
}

// translateStop keeps (stop:) as an opaque marker; it only means something
// inside a live hook at runtime.
func translateStop(_ *Context, _ []Value, _ *Hook) story.Node {
	return &story.RawExpression{Expression: "stop"}
}
