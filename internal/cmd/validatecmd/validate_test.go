package validatecmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanStory = `<html><body>
<tw-storydata name="Clean" ifid="9F187C4A-4F67-42B5-A7F2-2582A9E2D2E8" format="Harlowe" startnode="1">
<tw-passagedata pid="1" name="Start" tags="">(set: $gold to 10)[[Next]]</tw-passagedata>
<tw-passagedata pid="2" name="Next" tags="">(print: $gold)</tw-passagedata>
</tw-storydata></body></html>`

const deadLinkStory = `<html><body>
<tw-storydata name="Broken" ifid="9F187C4A-4F67-42B5-A7F2-2582A9E2D2E8" format="Harlowe" startnode="1">
<tw-passagedata pid="1" name="Start" tags="">[[Nowhere]]</tw-passagedata>
</tw-storydata></body></html>`

func writeStory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "story.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TWC_DIALECT", "")
}

func TestNewCmdValidate_Flags(t *testing.T) {
	cmd := NewCmdValidate()

	assert.Equal(t, "validate <story.html>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("dialect"))
	assert.NotNil(t, cmd.Flags().Lookup("errors-only"))
}

func TestRunValidate_CleanStory(t *testing.T) {
	isolateConfig(t)
	opts := &validateOptions{noColor: true}
	require.NoError(t, runValidate(opts, writeStory(t, cleanStory)))
}

func TestRunValidate_DeadLinkFails(t *testing.T) {
	isolateConfig(t)
	opts := &validateOptions{noColor: true}
	err := runValidate(opts, writeStory(t, deadLinkStory))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error finding")
}

func TestRunValidate_ErrorsOnlyFiltersWarnings(t *testing.T) {
	isolateConfig(t)
	opts := &validateOptions{errorsOnly: true, noColor: true}
	err := runValidate(opts, writeStory(t, deadLinkStory))
	require.Error(t, err, "dead link stays after filtering warnings")
}
