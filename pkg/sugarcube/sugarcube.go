// Package sugarcube converts the simpler template-tag story dialect
// (<<name args>> … <</name>>) into the shared syntax-tree node set. The
// dialect is deliberately handled mechanically: tags are matched by plain
// string scanning and only the baseline tag set gets structural nodes;
// everything unknown degrades to a Warning node, never an error return.
package sugarcube

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/harlowe"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

// tagToken is one recognized <<…>> span or the text between spans.
type tagToken struct {
	text    string // set for text tokens
	name    string // lowercase tag name, "" for text tokens
	args    string // raw argument text after the name
	closing bool   // true for <</name>>
}

// ParsePassage converts one passage of template-tag source into its syntax
// tree. As with the Harlowe engine it always returns a full node list;
// defects appear as Error/Warning nodes in place.
func ParsePassage(text string) []story.Node {
	tokens := tokenize(text)

	type branch struct {
		condition story.Node // nil for else
		elsif     bool
		nodes     []story.Node
	}
	type frame struct {
		branches []*branch
	}

	var out []story.Node
	var stack []*frame

	emit := func(nodes ...story.Node) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			cur := top.branches[len(top.branches)-1]
			cur.nodes = append(cur.nodes, nodes...)
			return
		}
		out = append(out, nodes...)
	}

	for _, tok := range tokens {
		switch {
		case tok.name == "":
			emit(parseText(tok.text)...)

		case tok.closing:
			if tok.name != "if" || len(stack) == 0 {
				emit(&story.Warning{
					Message:   "orphan close tag: <</" + tok.name + ">>",
					MacroName: tok.name,
				})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			var branchNodes []story.Node
			for _, b := range top.branches {
				switch {
				case b.condition == nil:
					branchNodes = append(branchNodes, &story.Else{Body: b.nodes})
				case b.elsif:
					branchNodes = append(branchNodes, &story.Elsif{Condition: b.condition, Body: b.nodes})
				default:
					branchNodes = append(branchNodes, &story.Conditional{Condition: b.condition, Body: b.nodes})
				}
			}
			emit(branchNodes...)

		case tok.name == "if":
			stack = append(stack, &frame{branches: []*branch{
				{condition: parseCondition(tok.args)},
			}})

		case tok.name == "elseif":
			if len(stack) == 0 {
				emit(&story.Warning{Message: "elseif without an open if", MacroName: "elseif"})
				continue
			}
			top := stack[len(stack)-1]
			top.branches = append(top.branches, &branch{
				condition: parseCondition(tok.args),
				elsif:     true,
			})

		case tok.name == "else":
			if len(stack) == 0 {
				emit(&story.Warning{Message: "else without an open if", MacroName: "else"})
				continue
			}
			top := stack[len(stack)-1]
			top.branches = append(top.branches, &branch{})

		case tok.name == "endif":
			// Older stories close with <<endif>>; treat it like <</if>>.
			if len(stack) == 0 {
				emit(&story.Warning{Message: "endif without an open if", MacroName: "endif"})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, b := range top.branches {
				switch {
				case b.condition == nil:
					emit(&story.Else{Body: b.nodes})
				case b.elsif:
					emit(&story.Elsif{Condition: b.condition, Body: b.nodes})
				default:
					emit(&story.Conditional{Condition: b.condition, Body: b.nodes})
				}
			}

		default:
			emit(translateTag(tok))
		}
	}

	// Unclosed ifs still produce their branches; the defect is recorded
	// in place so the rest of the passage is unaffected.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes := []story.Node{story.Errorf("<<if>>", "if tag never closed")}
		for _, b := range top.branches {
			switch {
			case b.condition == nil:
				nodes = append(nodes, &story.Else{Body: b.nodes})
			case b.elsif:
				nodes = append(nodes, &story.Elsif{Condition: b.condition, Body: b.nodes})
			default:
				nodes = append(nodes, &story.Conditional{Condition: b.condition, Body: b.nodes})
			}
		}
		if len(stack) > 0 {
			top = stack[len(stack)-1]
			cur := top.branches[len(top.branches)-1]
			cur.nodes = append(cur.nodes, nodes...)
		} else {
			out = append(out, nodes...)
		}
	}

	return out
}

// tokenize splits the source into text and tag tokens. A << with no
// matching >> is ordinary text.
func tokenize(text string) []tagToken {
	var tokens []tagToken
	pos := 0
	textStart := 0
	for pos < len(text) {
		if !strings.HasPrefix(text[pos:], "<<") {
			pos++
			continue
		}
		rel := strings.Index(text[pos+2:], ">>")
		if rel < 0 {
			pos++
			continue
		}
		interior := text[pos+2 : pos+2+rel]
		name, args, closing, ok := splitTag(interior)
		if !ok {
			pos++
			continue
		}
		if pos > textStart {
			tokens = append(tokens, tagToken{text: text[textStart:pos]})
		}
		tokens = append(tokens, tagToken{name: name, args: args, closing: closing})
		pos += 2 + rel + 2
		textStart = pos
	}
	if textStart < len(text) {
		tokens = append(tokens, tagToken{text: text[textStart:]})
	}
	return tokens
}

func splitTag(interior string) (name, args string, closing, ok bool) {
	s := strings.TrimSpace(interior)
	if rest, found := strings.CutPrefix(s, "/"); found {
		name = strings.TrimSpace(rest)
		if !isTagName(name) {
			return "", "", false, false
		}
		return strings.ToLower(name), "", true, true
	}
	i := 0
	for i < len(s) && isTagNameChar(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", false, false
	}
	return strings.ToLower(s[:i]), strings.TrimSpace(s[i:]), false, true
}

// translateTag maps one self-contained tag to its node. Unknown tags keep
// the failure-tolerance contract and come back as Warning nodes.
func translateTag(tok tagToken) story.Node {
	switch tok.name {
	case "set":
		return translateSet(tok.args)
	case "unset":
		if tok.args == "" {
			return story.Errorf("<<unset>>", "unset needs a variable")
		}
		v, ok := harlowe.Classify(tok.args).(harlowe.VariableValue)
		if !ok {
			return story.Errorf(tok.args, "unset target %q is not a variable", tok.args)
		}
		return &story.Assignment{Scope: v.Scope, Variable: v.Name, Operator: "to", Value: story.Null()}
	case "print", "-", "=":
		if tok.args == "" {
			return &story.Warning{Message: "print tag without a value", MacroName: tok.name}
		}
		return harlowe.NodeOf(harlowe.Classify(tok.args))
	case "goto":
		dest := unquote(tok.args)
		if dest == "" {
			return &story.Warning{Message: "goto without a destination", MacroName: "goto"}
		}
		return &story.Goto{Destination: dest}
	case "link":
		return translateLink(tok.args)
	default:
		return &story.Warning{
			Message:   "unknown tag: <<" + tok.name + ">>",
			MacroName: tok.name,
			Args:      []story.Node{&story.RawExpression{Expression: tok.args}},
		}
	}
}

// translateSet handles both "to" and "=" assignment spellings. A missing
// target is a hard error, matching the Harlowe engine's taxonomy.
func translateSet(args string) story.Node {
	sep := " to "
	i := strings.Index(args, sep)
	if i < 0 {
		sep = "="
		i = strings.Index(args, sep)
	}
	if i < 0 {
		return story.Errorf(args, "set needs the form $variable to value")
	}
	v, ok := harlowe.Classify(args[:i]).(harlowe.VariableValue)
	if !ok {
		return story.Errorf(args, "set target %q is not a variable", strings.TrimSpace(args[:i]))
	}
	return &story.Assignment{
		Scope:    v.Scope,
		Variable: v.Name,
		Operator: "to",
		Value:    harlowe.NodeOf(harlowe.Classify(args[i+len(sep):])),
	}
}

func translateLink(args string) story.Node {
	parts := splitQuoted(args)
	if len(parts) == 0 {
		return &story.Warning{Message: "link tag without link text", MacroName: "link"}
	}
	choice := &story.Choice{Text: unquote(parts[0])}
	if len(parts) > 1 {
		choice.Destination = unquote(parts[1])
	}
	return choice
}

func parseCondition(args string) story.Node {
	return harlowe.NodeOf(harlowe.Classify(args))
}

// parseText emits Text nodes, splitting out [[…]] navigation links.
func parseText(text string) []story.Node {
	var nodes []story.Node
	for {
		open := strings.Index(text, "[[")
		if open < 0 {
			break
		}
		rel := strings.Index(text[open+2:], "]]")
		if rel < 0 {
			break
		}
		interior := text[open+2 : open+2+rel]
		display, dest := splitLinkTarget(interior)
		if dest == "" {
			break
		}
		if open > 0 {
			nodes = append(nodes, &story.Text{Content: text[:open]})
		}
		nodes = append(nodes, &story.Choice{Text: display, Destination: dest})
		text = text[open+2+rel+2:]
	}
	if text != "" {
		nodes = append(nodes, &story.Text{Content: text})
	}
	return nodes
}

func splitLinkTarget(interior string) (display, dest string) {
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
	return strings.TrimSpace(display), strings.TrimSpace(dest)
}

// splitQuoted splits space-separated arguments, keeping quoted spans whole.
func splitQuoted(s string) []string {
	var parts []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isTagName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTagNameChar(s[i]) {
			return false
		}
	}
	return true
}

func isTagNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '=' || c == '/'
}
