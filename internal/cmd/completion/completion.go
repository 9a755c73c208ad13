// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Load in current session
  source <(plainmd completion bash)

  # Install permanently (Linux)
  plainmd completion bash | sudo tee /etc/bash_completion.d/plainmd > /dev/null

  # Install permanently (macOS with Homebrew)
  plainmd completion bash > $(brew --prefix)/etc/bash_completion.d/plainmd`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
	},
	{
		name: "zsh",
		install: `  # Load in current session
  source <(plainmd completion zsh)

  # Install permanently, then add ~/.zsh/completions to fpath in ~/.zshrc
  mkdir -p ~/.zsh/completions
  plainmd completion zsh > ~/.zsh/completions/_plainmd`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `  # Load in current session
  plainmd completion fish | source

  # Install permanently
  plainmd completion fish > ~/.config/fish/completions/plainmd.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `  # Load in current session
  plainmd completion powershell | Out-String | Invoke-Expression

  # Install permanently by adding the line above to your $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for plainmd.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.name + " completion script",
		Long:                  "Generate " + sh.name + " completion script for plainmd.",
		Example:               sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
