package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for twc.

To load completions in your current shell session:

  twc completion fish | source

To load completions for every new session:

  twc completion fish > ~/.config/fish/completions/twc.fish`,
		Example: `  # Load in current session
  twc completion fish | source

  # Install permanently
  twc completion fish > ~/.config/fish/completions/twc.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
