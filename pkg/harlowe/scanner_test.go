package harlowe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

func TestParsePassage_EmptyInput(t *testing.T) {
	nodes := ParsePassage("")
	assert.Empty(t, nodes)
}

func TestParsePassage_PlainText(t *testing.T) {
	nodes := ParsePassage("Hello world")
	require.Len(t, nodes, 1)
	text, ok := nodes[0].(*story.Text)
	require.True(t, ok)
	assert.Equal(t, "Hello world", text.Content)
}

func TestParsePassage_BalancedNesting(t *testing.T) {
	nodes := ParsePassage("(if: (num: 5) > 3)[shown]")
	require.Len(t, nodes, 1)
	cond, ok := nodes[0].(*story.Conditional)
	require.True(t, ok)

	bin, ok := cond.Condition.(*story.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ">", bin.Operator)
	left, ok := bin.Left.(*story.RawExpression)
	require.True(t, ok)
	assert.Contains(t, left.Expression, "num")

	require.Len(t, cond.Body, 1)
	assert.Equal(t, &story.Text{Content: "shown"}, cond.Body[0])
}

func TestParsePassage_StringLiteralImmunity(t *testing.T) {
	nodes := ParsePassage(`(set: $x to "a) (b")`)
	require.Len(t, nodes, 1)
	asn, ok := nodes[0].(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", asn.Variable)
	assert.Equal(t, story.ScopeStory, asn.Scope)
	assert.Equal(t, "to", asn.Operator)
	assert.Equal(t, story.String("a) (b"), asn.Value)
}

func TestParsePassage_UnknownMacroDegrades(t *testing.T) {
	nodes := ParsePassage("(totallyUnknownMacro: 1, 2)[x]")
	require.Len(t, nodes, 1)
	warn, ok := nodes[0].(*story.Warning)
	require.True(t, ok)
	assert.Equal(t, "totallyUnknownMacro", warn.MacroName)
	require.Len(t, warn.Args, 2)
	assert.Equal(t, story.Number(1), warn.Args[0])
	assert.Equal(t, story.Number(2), warn.Args[1])
	assert.Equal(t, "x", warn.HookText)
}

func TestParsePassage_HookAttachmentAdjacency(t *testing.T) {
	nodes := ParsePassage("(if: $x)[a]")
	require.Len(t, nodes, 1)
	cond := nodes[0].(*story.Conditional)
	require.Len(t, cond.Body, 1)
	assert.Equal(t, &story.Text{Content: "a"}, cond.Body[0])
}

func TestParsePassage_HookNotAttachedAcrossSpace(t *testing.T) {
	nodes := ParsePassage("(if: $x) [a]")
	require.Len(t, nodes, 2)
	cond := nodes[0].(*story.Conditional)
	assert.Empty(t, cond.Body)
	text, ok := nodes[1].(*story.Text)
	require.True(t, ok)
	assert.Equal(t, " [a]", text.Content)
}

func TestParsePassage_MalformedMacroDoesNotContaminateSiblings(t *testing.T) {
	nodes := ParsePassage(`(set: $a to 1)(set:)(go-to: "End")`)
	require.Len(t, nodes, 3)
	assert.IsType(t, &story.Assignment{}, nodes[0])
	assert.IsType(t, &story.Error{}, nodes[1])
	assert.Equal(t, &story.Goto{Destination: "End"}, nodes[2])
}

func TestParsePassage_UnclosedMacroIsText(t *testing.T) {
	nodes := ParsePassage("before (if: $x")
	require.Len(t, nodes, 1)
	text, ok := nodes[0].(*story.Text)
	require.True(t, ok)
	assert.Equal(t, "before (if: $x", text.Content)
}

func TestParsePassage_ProseParenthesesStayText(t *testing.T) {
	nodes := ParsePassage("a thought (see below) continues")
	require.Len(t, nodes, 1)
	assert.Equal(t, &story.Text{Content: "a thought (see below) continues"}, nodes[0])
}

func TestParsePassage_BareElse(t *testing.T) {
	nodes := ParsePassage("(else:)[fallback]")
	require.Len(t, nodes, 1)
	els, ok := nodes[0].(*story.Else)
	require.True(t, ok)
	require.Len(t, els.Body, 1)
	assert.Equal(t, &story.Text{Content: "fallback"}, els.Body[0])
}

func TestParsePassage_MacroNameCaseInsensitive(t *testing.T) {
	nodes := ParsePassage(`(GO-TO: "End")`)
	require.Len(t, nodes, 1)
	assert.Equal(t, &story.Goto{Destination: "End"}, nodes[0])
}

func TestParsePassage_LinkArrow(t *testing.T) {
	nodes := ParsePassage("Go [[north->Forest]] now")
	require.Len(t, nodes, 3)
	assert.Equal(t, &story.Text{Content: "Go "}, nodes[0])
	assert.Equal(t, &story.Choice{Text: "north", Destination: "Forest"}, nodes[1])
	assert.Equal(t, &story.Text{Content: " now"}, nodes[2])
}

func TestParsePassage_LinkReverseArrow(t *testing.T) {
	nodes := ParsePassage("[[Forest<-north]]")
	require.Len(t, nodes, 1)
	assert.Equal(t, &story.Choice{Text: "north", Destination: "Forest"}, nodes[0])
}

func TestParsePassage_LinkBareAndPipe(t *testing.T) {
	nodes := ParsePassage("[[Forest]] [[n|Forest]]")
	require.Len(t, nodes, 3)
	assert.Equal(t, &story.Choice{Text: "Forest", Destination: "Forest"}, nodes[0])
	assert.Equal(t, &story.Choice{Text: "n", Destination: "Forest"}, nodes[2])
}

func TestParsePassage_NamedHookExtractedFirst(t *testing.T) {
	nodes := ParsePassage("Hello |aside>[secret text] bye")
	require.Len(t, nodes, 2)
	hook, ok := nodes[0].(*story.NamedHook)
	require.True(t, ok)
	assert.Equal(t, "aside", hook.Name)
	assert.False(t, hook.Hidden)
	require.Len(t, hook.Content, 1)
	assert.Equal(t, &story.Text{Content: "secret text"}, hook.Content[0])
	assert.Equal(t, &story.Text{Content: "Hello  bye"}, nodes[1])
}

func TestParsePassage_HiddenNamedHook(t *testing.T) {
	nodes := ParsePassage("|spoiler)[shh]")
	require.Len(t, nodes, 1)
	hook := nodes[0].(*story.NamedHook)
	assert.Equal(t, "spoiler", hook.Name)
	assert.True(t, hook.Hidden)
}

func TestParsePassage_RightSideNamedHook(t *testing.T) {
	nodes := ParsePassage("[margin note]<side|")
	require.Len(t, nodes, 1)
	hook := nodes[0].(*story.NamedHook)
	assert.Equal(t, "side", hook.Name)
	assert.False(t, hook.Hidden)
	require.Len(t, hook.Content, 1)
	assert.Equal(t, &story.Text{Content: "margin note"}, hook.Content[0])
}

func TestParsePassage_MacroInsideHookBody(t *testing.T) {
	nodes := ParsePassage("(if: $a)[(set: $b to 2)]")
	require.Len(t, nodes, 1)
	cond := nodes[0].(*story.Conditional)
	require.Len(t, cond.Body, 1)
	asn, ok := cond.Body[0].(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, "b", asn.Variable)
}

func TestParsePassage_DepthGuard(t *testing.T) {
	deep := strings.Repeat("(if: $x)[", 40) + "bottom" + strings.Repeat("]", 40)
	nodes := ParsePassage(deep)

	errCount := 0
	story.WalkList(nodes, func(n story.Node) bool {
		if _, ok := n.(*story.Error); ok {
			errCount++
		}
		return true
	})
	assert.GreaterOrEqual(t, errCount, 1, "excess nesting should surface as an Error node")
}

func TestParsePassage_NeverDropsCharacters(t *testing.T) {
	input := `a ( b [ c "unterminated`
	nodes := ParsePassage(input)
	require.Len(t, nodes, 1)
	assert.Equal(t, &story.Text{Content: input}, nodes[0])
}

func TestRegistry_CustomTranslatorExtension(t *testing.T) {
	r := NewRegistry()
	r.Register("shout", func(_ *Context, args []Value, _ *Hook) story.Node {
		return story.String(strings.ToUpper(valueText(args[0])))
	})
	nodes := r.ParsePassage(`(shout: "hi")`)
	require.Len(t, nodes, 1)
	assert.Equal(t, story.String("HI"), nodes[0])
}

func TestParsePassage_PossessiveOrdinalInMacro(t *testing.T) {
	nodes := ParsePassage("(set: $x to $arr's 1st)")
	require.Len(t, nodes, 1)
	asn, ok := nodes[0].(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", asn.Variable)

	acc, ok := asn.Value.(*story.ArrayAccess)
	require.True(t, ok)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "arr"}, acc.Target)
	assert.Equal(t, story.Number(0), acc.Index, "1st converts to index 0")
}

func TestParsePassage_PossessiveLengthCondition(t *testing.T) {
	nodes := ParsePassage("(if: $arr's length > 2)[big]")
	require.Len(t, nodes, 1)
	cond, ok := nodes[0].(*story.Conditional)
	require.True(t, ok)

	bin, ok := cond.Condition.(*story.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ">", bin.Operator)
	length, ok := bin.Left.(*story.LengthOf)
	require.True(t, ok)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "arr"}, length.Target)

	require.Len(t, cond.Body, 1)
	assert.Equal(t, &story.Text{Content: "big"}, cond.Body[0])
}

func TestParsePassage_ApostropheInProse(t *testing.T) {
	nodes := ParsePassage("Don't worry. (set: $x to 1)")
	require.Len(t, nodes, 2)
	text, ok := nodes[0].(*story.Text)
	require.True(t, ok)
	assert.Equal(t, "Don't worry. ", text.Content)
	_, ok = nodes[1].(*story.Assignment)
	assert.True(t, ok)
}

func TestParsePassage_SingleQuotedStringStillImmune(t *testing.T) {
	nodes := ParsePassage(`(set: $x to 'a) (b')`)
	require.Len(t, nodes, 1)
	asn, ok := nodes[0].(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, story.String("a) (b"), asn.Value)
}
