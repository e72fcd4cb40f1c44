// Package root provides the root command for the twc CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-story-collective/twine-cli/internal/cmd/completion"
	"github.com/open-story-collective/twine-cli/internal/cmd/configcmd"
	"github.com/open-story-collective/twine-cli/internal/cmd/convert"
	initcmd "github.com/open-story-collective/twine-cli/internal/cmd/init"
	"github.com/open-story-collective/twine-cli/internal/cmd/passages"
	"github.com/open-story-collective/twine-cli/internal/cmd/proof"
	"github.com/open-story-collective/twine-cli/internal/cmd/validatecmd"
	"github.com/open-story-collective/twine-cli/internal/version"
)

// NewCmdRoot creates the root command for twc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twc",
		Short: "A command-line toolkit for Twine stories",
		Long: `twc converts Twine story archives into dialect-independent syntax
trees and checks them for structural problems.

It understands the Harlowe and SugarCube macro dialects and degrades
gracefully on anything it cannot translate, so a conversion always
covers the whole story.

Get started by running: twc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/twc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("twc version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(validatecmd.NewCmdValidate())
	cmd.AddCommand(passages.NewCmdPassages())
	cmd.AddCommand(proof.NewCmdProof())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
