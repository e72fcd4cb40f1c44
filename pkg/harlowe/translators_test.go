package harlowe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

func parseOne(t *testing.T, input string) story.Node {
	t.Helper()
	nodes := ParsePassage(input)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestTranslateSet_TemporaryVariable(t *testing.T) {
	node := parseOne(t, "(set: _tmp to 5)")
	asn, ok := node.(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, story.ScopeTemporary, asn.Scope)
	assert.Equal(t, "tmp", asn.Variable)
	assert.Equal(t, story.Number(5), asn.Value)
}

func TestTranslateSet_ExpressionValue(t *testing.T) {
	node := parseOne(t, "(set: $gold to $gold + 10)")
	asn := node.(*story.Assignment)
	bin, ok := asn.Value.(*story.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "gold"}, bin.Left)
	assert.Equal(t, story.Number(10), bin.Right)
}

func TestTranslateSet_MissingTargetIsError(t *testing.T) {
	node := parseOne(t, "(set:)")
	err, ok := node.(*story.Error)
	require.True(t, ok)
	assert.Contains(t, err.Message, "assignment")
}

func TestTranslateSet_NonVariableTargetIsError(t *testing.T) {
	node := parseOne(t, "(set: 5 to 3)")
	assert.IsType(t, &story.Error{}, node)
}

func TestTranslatePut_ReversedOperands(t *testing.T) {
	node := parseOne(t, "(put: 3 into $count)")
	asn, ok := node.(*story.Assignment)
	require.True(t, ok)
	assert.Equal(t, "count", asn.Variable)
	assert.Equal(t, "into", asn.Operator)
	assert.Equal(t, story.Number(3), asn.Value)
}

func TestTranslateFor_SplitAndCombinedFormsAgree(t *testing.T) {
	split := parseOne(t, "(for: each _item, ...$items)[x]")
	combined := parseOne(t, "(for: each _item ...$items)[x]")
	assert.Equal(t, split, combined)

	loop, ok := split.(*story.ForLoop)
	require.True(t, ok)
	assert.Equal(t, "item", loop.Variable)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "items"}, loop.Collection)
	require.Len(t, loop.Body, 1)
}

func TestTranslateFor_MissingCollectionIsError(t *testing.T) {
	node := parseOne(t, "(for: each _item)[x]")
	assert.IsType(t, &story.Error{}, node)
}

func TestTranslateUnless_InvertsCondition(t *testing.T) {
	node := parseOne(t, "(unless: $done)[keep going]")
	cond := node.(*story.Conditional)
	not, ok := cond.Condition.(*story.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "not", not.Operator)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "done"}, not.Operand)
}

func TestTranslateElsif_CarriesConditionAndBody(t *testing.T) {
	node := parseOne(t, "(else-if: $hp < 5)[Danger]")
	elsif := node.(*story.Elsif)
	bin := elsif.Condition.(*story.BinaryOp)
	assert.Equal(t, "<", bin.Operator)
	require.Len(t, elsif.Body, 1)
}

func TestTranslateDatamap_OddArityIsError(t *testing.T) {
	node := parseOne(t, `(dm: "a", 1, "b")`)
	err, ok := node.(*story.Error)
	require.True(t, ok)
	assert.Contains(t, err.Message, "even number")
}

func TestTranslateDatamap_PairsInSourceOrder(t *testing.T) {
	node := parseOne(t, `(dm: "a", 1, "b", 2)`)
	table, ok := node.(*story.TableLiteral)
	require.True(t, ok)
	require.Len(t, table.Entries, 2)
	assert.Equal(t, story.String("a"), table.Entries[0].Key)
	assert.Equal(t, story.Number(1), table.Entries[0].Value)
	assert.Equal(t, story.String("b"), table.Entries[1].Key)
	assert.Equal(t, story.Number(2), table.Entries[1].Value)
}

func TestTranslateArray_Items(t *testing.T) {
	node := parseOne(t, `(a: 1, "two", $three)`)
	arr := node.(*story.ArrayLiteral)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, story.Number(1), arr.Items[0])
	assert.Equal(t, story.String("two"), arr.Items[1])
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "three"}, arr.Items[2])
}

func TestTranslateEither_ExplicitList(t *testing.T) {
	node := parseOne(t, `(either: "red", "blue", "green")`)
	choice := node.(*story.RandomChoice)
	assert.False(t, choice.Spread)
	assert.Len(t, choice.Options, 3)
}

func TestTranslateEither_SpreadCollection(t *testing.T) {
	node := parseOne(t, "(either: ...$colors)")
	choice := node.(*story.RandomChoice)
	assert.True(t, choice.Spread)
	require.Len(t, choice.Options, 1)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "colors"}, choice.Options[0])
}

func TestTranslateRandom_TwoBounds(t *testing.T) {
	node := parseOne(t, "(random: 1, 6)")
	rnd := node.(*story.RandomNumber)
	assert.Equal(t, story.Number(1), rnd.Min)
	assert.Equal(t, story.Number(6), rnd.Max)
}

func TestTranslateRandom_WrongArityIsError(t *testing.T) {
	node := parseOne(t, "(random: 1)")
	assert.IsType(t, &story.Error{}, node)
}

func TestTranslateRange_TwoBounds(t *testing.T) {
	node := parseOne(t, "(range: 1, 10)")
	rng := node.(*story.Range)
	assert.Equal(t, story.Number(1), rng.Min)
	assert.Equal(t, story.Number(10), rng.Max)
}

func TestTranslatePrint_EmitsValueNode(t *testing.T) {
	node := parseOne(t, "(print: $name)")
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "name"}, node)
}

func TestTranslateLinkGoto_TextAndDestination(t *testing.T) {
	node := parseOne(t, `(link-goto: "North", "Forest")`)
	choice := node.(*story.Choice)
	assert.Equal(t, "North", choice.Text)
	assert.Equal(t, "Forest", choice.Destination)
}

func TestTranslateLink_BodyFromHook(t *testing.T) {
	node := parseOne(t, `(link: "Look closer")[You see a key.]`)
	choice := node.(*story.Choice)
	assert.Equal(t, "Look closer", choice.Text)
	assert.Empty(t, choice.Destination)
	require.Len(t, choice.Body, 1)
}

func TestTranslateReplace_HookReference(t *testing.T) {
	node := parseOne(t, "(replace: ?intro)[New text]")
	upd, ok := node.(*story.HookUpdate)
	require.True(t, ok)
	assert.Equal(t, story.HookReplace, upd.Operation)
	assert.Equal(t, "intro", upd.HookName)
	require.Len(t, upd.Content, 1)
	assert.Equal(t, &story.Text{Content: "New text"}, upd.Content[0])
}

func TestTranslateReplace_MissingReferenceIsError(t *testing.T) {
	node := parseOne(t, "(replace:)[x]")
	assert.IsType(t, &story.Error{}, node)
}

func TestTranslateReplace_NonHookReferenceIsError(t *testing.T) {
	node := parseOne(t, `(replace: "intro")[x]`)
	assert.IsType(t, &story.Error{}, node)
}

func TestTranslateShow_Visibility(t *testing.T) {
	node := parseOne(t, "(show: ?spoiler)")
	vis, ok := node.(*story.HookVisibility)
	require.True(t, ok)
	assert.Equal(t, story.HookShow, vis.Operation)
	assert.Equal(t, "spoiler", vis.HookName)
}

func TestTranslateLive_CarriesAdvisory(t *testing.T) {
	node := parseOne(t, "(live: 2s)[tick]")
	live, ok := node.(*story.LiveUpdate)
	require.True(t, ok)
	assert.Equal(t, &story.RawExpression{Expression: "2s"}, live.Interval)
	require.Len(t, live.Body, 1)
	require.NotNil(t, live.Advisory)
	assert.Equal(t, story.SeverityWarning, live.Advisory.Severity)
	assert.Contains(t, live.Advisory.Message, "runtime")
}

func TestTranslateEvent_StripsWhenAndParsesCondition(t *testing.T) {
	node := parseOne(t, "(event: when $hp < 1)[Game over]")
	ev, ok := node.(*story.EventListener)
	require.True(t, ok)
	bin := ev.Condition.(*story.BinaryOp)
	assert.Equal(t, "<", bin.Operator)
	assert.Equal(t, &story.VariableRef{Scope: story.ScopeStory, Name: "hp"}, bin.Left)
	require.NotNil(t, ev.Advisory)
}

func TestTranslateStop_OpaqueMarker(t *testing.T) {
	node := parseOne(t, "(stop:)")
	assert.Equal(t, &story.RawExpression{Expression: "stop"}, node)
}
