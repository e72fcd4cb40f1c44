package configcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-story-collective/twine-cli/internal/config"
)

func TestRunShow_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	cfg := &config.Config{
		Dialect:      config.DialectHarlowe,
		OutputFormat: "json",
	}
	require.NoError(t, cfg.Save(filepath.Join(tmpDir, "twc", "config.yml")))

	err := runShow(true)
	require.NoError(t, err)
}

func TestRunShow_NoConfigFile(t *testing.T) {
	for _, v := range []string{"TWC_DIALECT", "TWC_OUTPUT_FORMAT", "TWC_STRICT"} {
		orig := os.Getenv(v)
		os.Unsetenv(v)
		defer os.Setenv(v, orig)
	}

	origXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer os.Setenv("XDG_CONFIG_HOME", origXDG)

	err := runShow(true)
	require.NoError(t, err)
}
