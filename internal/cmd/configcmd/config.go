// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage plainmd configuration",
		Long:  `Commands for viewing, validating, resetting, and clearing plainmd configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdPath())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdReset())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars are the environment variables that override the config file.
var envVars = []string{
	"PLAINMD_ENABLED",
	"PLAINMD_BOLD_MODE",
	"PLAINMD_ITALIC_MODE",
	"PLAINMD_STRIKETHROUGH_MODE",
	"PLAINMD_BULLET_CHAR",
	"PLAINMD_OUTPUT",
}
