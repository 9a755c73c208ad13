package rules

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/view"
)

type listOptions struct {
	global cmdutil.GlobalOptions
	out    io.Writer
}

// NewCmdList creates the rules list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List custom rules in application order",
		Example: `  # List rules
  plainmd rules list

  # Output as JSON
  plainmd rules list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.out = cmd.OutOrStdout()
			return runList(opts)
		},
	}

	return cmd
}

func runList(opts *listOptions) error {
	cfg, err := loadFile(opts.global.Path())
	if err != nil {
		return err
	}

	renderer, err := opts.global.Renderer(opts.out, cfg)
	if err != nil {
		return err
	}

	rules := cfg.Conversion.CustomRules
	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(rules)
	}

	if len(rules) == 0 {
		renderer.RenderText("No custom rules configured.")
		return nil
	}

	headers := []string{"POS", "NAME", "PATTERN", "REPLACEMENT", "STAGE", "FLAGS", "ENABLED"}
	var rows [][]string
	for i, rule := range rules {
		flags := "m"
		if rule.CaseInsensitive {
			flags += "i"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			view.Truncate(rule.Name, 24),
			view.Truncate(rule.Pattern, 40),
			view.Truncate(fmt.Sprintf("%q", rule.Replacement), 30),
			stage(rule.ApplyBeforeConversion),
			flags,
			strconv.FormatBool(rule.Enabled),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
