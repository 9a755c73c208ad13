// Package root provides the root command for the plainmd CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/completion"
	"github.com/open-cli-collective/plainmd/internal/cmd/configcmd"
	"github.com/open-cli-collective/plainmd/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/plainmd/internal/cmd/init"
	"github.com/open-cli-collective/plainmd/internal/cmd/rules"
	"github.com/open-cli-collective/plainmd/internal/version"
)

// NewCmdRoot creates the root command for plainmd.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plainmd",
		Short: "Convert markdown into visually formatted plain text",
		Long: `plainmd converts Markdown into plain text that keeps its look.

Headings, bold, italic, strikethrough, lists, checkboxes, quotes and code
are rendered with Unicode glyphs, so the text reads well in places that do
not render Markdown. Custom regex rules can rewrite the text before and
after the conversion.

Get started by running: plainmd init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/plainmd/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("plainmd version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(rules.NewCmdRules())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
