package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for twc.

To load completions in your current shell session:

  source <(twc completion bash)

To load completions for every new session:

  # Linux
  twc completion bash > /etc/bash_completion.d/twc

  # macOS (requires bash-completion)
  twc completion bash > $(brew --prefix)/etc/bash_completion.d/twc`,
		Example: `  # Load in current session
  source <(twc completion bash)

  # Install permanently (Linux)
  twc completion bash | sudo tee /etc/bash_completion.d/twc > /dev/null

  # Install permanently (macOS with Homebrew)
  twc completion bash > $(brew --prefix)/etc/bash_completion.d/twc`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
