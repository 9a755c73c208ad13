package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
)

type resetOptions struct {
	global cmdutil.GlobalOptions
	yes    bool
	out    io.Writer
	// confirm asks before overwriting an existing file.
	confirm func(path string) (bool, error)
}

// NewCmdReset creates the config reset command.
func NewCmdReset() *cobra.Command {
	opts := &resetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Write the default configuration",
		Long: `Overwrite the config file with the default settings. Custom rules are
removed.`,
		Example: `  # Reset, asking first
  plainmd config reset

  # Reset without asking
  plainmd config reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.out = cmd.OutOrStdout()
			return runReset(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite without asking")

	return cmd
}

func runReset(opts *resetOptions) error {
	if opts.global.NoColor {
		color.NoColor = true
	}

	configPath := opts.global.Path()

	if _, err := os.Stat(configPath); err == nil && !opts.yes {
		confirm := opts.confirm
		if confirm == nil {
			confirm = confirmOverwrite
		}
		ok, err := confirm(configPath)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(opts.out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.Default().Save(configPath); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(opts.out, "✓ Default configuration written to %s\n", configPath)
	return nil
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s with defaults?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}
