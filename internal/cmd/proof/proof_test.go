package proof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

func TestRenderProof(t *testing.T) {
	st := &story.Story{
		Name:         "My <Story>",
		StartPassage: "Start",
		Passages: []*story.Passage{
			{Name: "Start", Source: "You wake up.\n\n[[Go east->East]]"},
			{Name: "East", Tags: []string{"ending"}, Source: "# The End"},
		},
	}

	doc, err := renderProof(st)
	require.NoError(t, err)

	assert.Contains(t, doc, "My &lt;Story&gt;", "story name is escaped")
	assert.Contains(t, doc, "Start (start)")
	assert.Contains(t, doc, "tags: ending")
	assert.Contains(t, doc, "<h1>The End</h1>", "passage markdown is rendered")
	assert.Contains(t, doc, "[[Go east", "link syntax survives verbatim")
}

func TestRunProof_WritesFile(t *testing.T) {
	storyPath := filepath.Join(t.TempDir(), "story.html")
	src := `<html><body>
<tw-storydata name="Demo" ifid="9F187C4A-4F67-42B5-A7F2-2582A9E2D2E8" format="Harlowe" startnode="1">
<tw-passagedata pid="1" name="Start" tags="">Hello.</tw-passagedata>
</tw-storydata></body></html>`
	require.NoError(t, os.WriteFile(storyPath, []byte(src), 0644))

	outPath := filepath.Join(t.TempDir(), "proof.html")
	opts := &proofOptions{outPath: outPath, noColor: true}
	require.NoError(t, runProof(opts, storyPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello.")
}

func TestNewCmdProof_Flags(t *testing.T) {
	cmd := NewCmdProof()
	assert.Equal(t, "proof <story.html>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("out"))
}
