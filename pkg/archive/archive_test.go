package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStory = `<!DOCTYPE html>
<html><body>
<tw-storydata name="Museum Tour" ifid="D674C58C-DEFA-4F70-B7A2-27742230C0FC"
  format="Harlowe" startnode="2" hidden>
  <tw-passagedata pid="1" name="Lobby" tags="intro hall" position="10,10">Welcome. [[Enter-&gt;Gallery]]</tw-passagedata>
  <tw-passagedata pid="2" name="Gallery" position="20,20">(set: $seen to true)</tw-passagedata>
</tw-storydata>
</body></html>`

func TestParse_StoryMetadata(t *testing.T) {
	s, err := Parse(strings.NewReader(sampleStory))
	require.NoError(t, err)
	assert.Equal(t, "Museum Tour", s.Name)
	assert.Equal(t, "D674C58C-DEFA-4F70-B7A2-27742230C0FC", s.IFID)
	assert.Equal(t, "Harlowe", s.Format)
	assert.Equal(t, "Gallery", s.StartPassage)
}

func TestParse_Passages(t *testing.T) {
	s, err := Parse(strings.NewReader(sampleStory))
	require.NoError(t, err)
	require.Len(t, s.Passages, 2)

	lobby := s.Passages[0]
	assert.Equal(t, "1", lobby.PID)
	assert.Equal(t, "Lobby", lobby.Name)
	assert.Equal(t, []string{"intro", "hall"}, lobby.Tags)
	assert.Equal(t, "Welcome. [[Enter->Gallery]]", lobby.Source)

	assert.Equal(t, "(set: $seen to true)", s.Passages[1].Source)
}

func TestParse_NoStoryData(t *testing.T) {
	_, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tw-storydata")
}

func TestParse_MissingStartNodeFallsBackToFirstPassage(t *testing.T) {
	input := `<tw-storydata name="S"><tw-passagedata pid="1" name="Only">x</tw-passagedata></tw-storydata>`
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Only", s.StartPassage)
}

func TestParse_EscapedMacroSource(t *testing.T) {
	input := `<tw-storydata name="S" startnode="1">` +
		`<tw-passagedata pid="1" name="P">(if: $hp &lt; 3)[Run!]</tw-passagedata>` +
		`</tw-storydata>`
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "(if: $hp < 3)[Run!]", s.Passages[0].Source)
}

func TestParseWithOptions_NormalizeHTML(t *testing.T) {
	input := `<tw-storydata name="S" startnode="1">` +
		`<tw-passagedata pid="1" name="P">&lt;strong&gt;Bold words&lt;/strong&gt; rest</tw-passagedata>` +
		`</tw-storydata>`
	s, err := ParseWithOptions(strings.NewReader(input), Options{NormalizeHTML: true})
	require.NoError(t, err)
	assert.Contains(t, s.Passages[0].Source, "**Bold words**")
}

func TestParseWithOptions_NormalizeLeavesPlainMacrosAlone(t *testing.T) {
	input := `<tw-storydata name="S" startnode="1">` +
		`<tw-passagedata pid="1" name="P">(set: $x to 1) plain</tw-passagedata>` +
		`</tw-storydata>`
	s, err := ParseWithOptions(strings.NewReader(input), Options{NormalizeHTML: true})
	require.NoError(t, err)
	assert.Equal(t, "(set: $x to 1) plain", s.Passages[0].Source)
}

func TestParseAll_MultipleStories(t *testing.T) {
	input := `<tw-storydata name="One" startnode="1"><tw-passagedata pid="1" name="A">a</tw-passagedata></tw-storydata>` +
		`<tw-storydata name="Two" startnode="1"><tw-passagedata pid="1" name="B">b</tw-passagedata></tw-storydata>`
	stories, err := ParseAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "One", stories[0].Name)
	assert.Equal(t, "Two", stories[1].Name)
}
