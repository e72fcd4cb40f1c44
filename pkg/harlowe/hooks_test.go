package harlowe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNamedHooks_NoHooks(t *testing.T) {
	clean, hooks := extractNamedHooks("just some prose")
	assert.Equal(t, "just some prose", clean)
	assert.Empty(t, hooks)
}

func TestExtractNamedHooks_LeftNub(t *testing.T) {
	clean, hooks := extractNamedHooks("before |note>[hidden words] after")
	assert.Equal(t, "before  after", clean)
	require.Len(t, hooks, 1)
	assert.Equal(t, namedHook{name: "note", content: "hidden words"}, hooks[0])
}

func TestExtractNamedHooks_RightNub(t *testing.T) {
	clean, hooks := extractNamedHooks("[margin]<side| rest")
	assert.Equal(t, " rest", clean)
	require.Len(t, hooks, 1)
	assert.Equal(t, namedHook{name: "side", content: "margin"}, hooks[0])
}

func TestExtractNamedHooks_HiddenForms(t *testing.T) {
	_, hooks := extractNamedHooks("|a)[one] [two](b|")
	require.Len(t, hooks, 2)
	assert.True(t, hooks[0].hidden)
	assert.Equal(t, "a", hooks[0].name)
	assert.True(t, hooks[1].hidden)
	assert.Equal(t, "b", hooks[1].name)
}

func TestExtractNamedHooks_NestedBracketsInContent(t *testing.T) {
	clean, hooks := extractNamedHooks("|outer>[has [inner] brackets]")
	assert.Equal(t, "", clean)
	require.Len(t, hooks, 1)
	assert.Equal(t, "has [inner] brackets", hooks[0].content)
}

func TestExtractNamedHooks_MalformedStaysText(t *testing.T) {
	clean, hooks := extractNamedHooks("|broken>[no close")
	assert.Equal(t, "|broken>[no close", clean)
	assert.Empty(t, hooks)
}

func TestExtractNamedHooks_LinksUntouched(t *testing.T) {
	clean, hooks := extractNamedHooks("go [[north->Forest]] now")
	assert.Equal(t, "go [[north->Forest]] now", clean)
	assert.Empty(t, hooks)
}

func TestExtractNamedHooks_AttachedHookLeftForScanner(t *testing.T) {
	clean, hooks := extractNamedHooks("(if: $x)[body]")
	assert.Equal(t, "(if: $x)[body]", clean)
	assert.Empty(t, hooks)
}

func TestExtractNamedHooks_MultipleInSourceOrder(t *testing.T) {
	_, hooks := extractNamedHooks("|first>[1] middle |second>[2]")
	require.Len(t, hooks, 2)
	assert.Equal(t, "first", hooks[0].name)
	assert.Equal(t, "second", hooks[1].name)
}

func TestExtractNamedHooks_IgnoresQuotedHookText(t *testing.T) {
	clean, hooks := extractNamedHooks(`(print: "[x]<n|")`)
	assert.Equal(t, `(print: "[x]<n|")`, clean)
	assert.Empty(t, hooks)
}
