package configcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
)

// NewCmdPath creates the config path command.
func NewCmdPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Example: `  # Edit the config by hand
  $EDITOR "$(plainmd config path)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(cmdutil.Globals(cmd), cmd.OutOrStdout())
		},
	}
}

func runPath(global cmdutil.GlobalOptions, out io.Writer) error {
	_, err := fmt.Fprintln(out, global.Path())
	return err
}
