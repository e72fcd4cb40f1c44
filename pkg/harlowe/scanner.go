// scanner.go walks passage text and assembles the syntax tree. The scan
// never fails: anything that cannot be recognized as a macro, link or named
// hook falls through as plain text, so the position always advances.
package harlowe

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

// maxNestDepth bounds recursion into hook bodies. Real passages nest a
// handful of levels; beyond this the scanner emits an Error node instead of
// growing the stack.
const maxNestDepth = 24

// ParsePassage converts one passage's raw text using the default registry.
func ParsePassage(text string) []story.Node {
	return Default().ParsePassage(text)
}

// ParsePassage converts one passage's raw text into its syntax tree. It
// never returns an error and never panics; defects surface as Error and
// Warning nodes inside the returned tree.
func (r *Registry) ParsePassage(text string) []story.Node {
	return r.parse(text, 0)
}

func (r *Registry) parse(text string, depth int) []story.Node {
	if depth > maxNestDepth {
		return []story.Node{story.Errorf(text, "hook nesting deeper than %d levels", maxNestDepth)}
	}

	clean, hooks := extractNamedHooks(text)

	var nodes []story.Node
	for _, h := range hooks {
		nodes = append(nodes, &story.NamedHook{
			Name:    h.name,
			Content: r.parse(h.content, depth+1),
			Hidden:  h.hidden,
		})
	}

	pos := 0
	textStart := 0
	flush := func(end int) {
		if end > textStart {
			nodes = append(nodes, &story.Text{Content: clean[textStart:end]})
		}
	}

	for pos < len(clean) {
		switch clean[pos] {
		case '(':
			if node, end, ok := r.scanMacro(clean, pos, depth); ok {
				flush(pos)
				nodes = append(nodes, node)
				pos = end
				textStart = pos
				continue
			}
		case '[':
			if node, end, ok := scanLink(clean, pos); ok {
				flush(pos)
				nodes = append(nodes, node)
				pos = end
				textStart = pos
				continue
			}
		}
		pos++
	}
	flush(len(clean))
	return nodes
}

// scanMacro tries to recognize a macro call at pos. ok=false means the
// parenthesis is ordinary text.
func (r *Registry) scanMacro(text string, pos, depth int) (story.Node, int, bool) {
	close, ok := matchDelimiter(text, pos, '(', ')')
	if !ok {
		return nil, 0, false
	}

	origName, argText, ok := splitMacroName(text[pos+1 : close])
	if !ok {
		return nil, 0, false
	}
	name := strings.ToLower(origName)

	// Bare (name) without the separator only counts as a macro when the
	// name is registered; prose parentheticals stay text.
	fn, registered := r.Lookup(name)
	if argText == bareNameForm && !registered {
		return nil, 0, false
	}

	args := parseArgs(argText)

	end := close + 1
	var hook *Hook
	// Hook attachment requires immediate adjacency: the very next byte
	// after the closing parenthesis must open the hook.
	if end < len(text) && text[end] == '[' {
		if hookClose, ok := matchDelimiter(text, end, '[', ']'); ok {
			hook = &Hook{Text: text[end+1 : hookClose]}
			end = hookClose + 1
		}
	}

	ctx := &Context{registry: r, depth: depth}
	if !registered {
		return story.UnknownMacro(origName, nodesOf(args), hook.text()), end, true
	}
	return fn(ctx, args, hook), end, true
}

// bareNameForm marks a macro written without the colon separator.
const bareNameForm = "\x00bare"

// splitMacroName splits macro interior text into name and argument text.
// Valid forms are `name: args`, `name:` and bare `name`; anything else is
// not a macro.
func splitMacroName(interior string) (name, argText string, ok bool) {
	i := 0
	for i < len(interior) && isMacroNameChar(interior[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	name = interior[:i]
	rest := interior[i:]
	if rest == "" {
		return name, bareNameForm, true
	}
	if rest[0] != ':' {
		return "", "", false
	}
	return name, rest[1:], true
}

// parseArgs splits argument text on top-level commas and classifies each
// piece. An empty or whitespace-only argument list yields no arguments, so
// a trailing separator as in (else:) is fine.
func parseArgs(argText string) []Value {
	if argText == bareNameForm || strings.TrimSpace(argText) == "" {
		return nil
	}
	parts := splitTop(argText, ',')
	args := make([]Value, 0, len(parts))
	for _, p := range parts {
		args = append(args, Classify(p))
	}
	return args
}

// scanLink recognizes [[text->dest]], [[dest<-text]], [[text|dest]] and
// [[dest]] navigation links.
func scanLink(text string, pos int) (story.Node, int, bool) {
	if !strings.HasPrefix(text[pos:], "[[") {
		return nil, 0, false
	}
	rel := strings.Index(text[pos+2:], "]]")
	if rel < 0 {
		return nil, 0, false
	}
	interior := text[pos+2 : pos+2+rel]
	end := pos + 2 + rel + 2

	var display, dest string
	switch {
	case strings.Contains(interior, "->"):
		parts := strings.SplitN(interior, "->", 2)
		display, dest = parts[0], parts[1]
	case strings.Contains(interior, "<-"):
		parts := strings.SplitN(interior, "<-", 2)
		dest, display = parts[0], parts[1]
	case strings.Contains(interior, "|"):
		parts := strings.SplitN(interior, "|", 2)
		display, dest = parts[0], parts[1]
	default:
		display, dest = interior, interior
	}
	display = strings.TrimSpace(display)
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return nil, 0, false
	}
	return &story.Choice{Text: display, Destination: dest}, end, true
}

func isMacroNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

// Hook is the raw attached-hook text handed to translators. Translators
// decide whether to recurse into it.
type Hook struct {
	Text string
}

func (h *Hook) text() string {
	if h == nil {
		return ""
	}
	return h.Text
}

// Context carries what a translator needs to recurse into hook bodies
// without reaching back into scanner state.
type Context struct {
	registry *Registry
	depth    int
}

// ParseHook parses an attached hook's content into a node list. A nil hook
// yields an empty body.
func (c *Context) ParseHook(h *Hook) []story.Node {
	if h == nil {
		return nil
	}
	return c.registry.parse(h.Text, c.depth+1)
}
