package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the plainmd configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  plainmd config clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmdutil.Globals(cmd), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runClear(global cmdutil.GlobalOptions, out io.Writer) error {
	if global.NoColor {
		color.NoColor = true
	}

	configPath := global.Path()

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(out, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(out, "✓ Configuration cleared from %s\n", configPath)
	}

	if active := activeEnvVars(); len(active) > 0 {
		_, _ = dim.Fprintf(out, "\nNote: Environment variables will still be used: %v\n", active)
	}

	return nil
}
