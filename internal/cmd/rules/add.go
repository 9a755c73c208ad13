package rules

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

type addOptions struct {
	global          cmdutil.GlobalOptions
	name            string
	pattern         string
	replacement     string
	caseInsensitive bool
	before          bool
	disabled        bool
	position        int
	out             io.Writer
}

// NewCmdAdd creates the rules add command.
func NewCmdAdd() *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <pattern> [replacement]",
		Short: "Add a custom rule",
		Long: `Add a regex find-and-replace rule.

Patterns use JavaScript-style regex syntax, including lookahead and
lookbehind, and always run in multiline mode. The replacement may refer to
capture groups as $1, $2, and so on. \n, \t, \r and \\ in the replacement
become the corresponding characters.

The pattern is compiled before saving; invalid patterns are rejected.`,
		Example: `  # Replace arrows after conversion
  plainmd rules add --name arrows -- "->" "→"

  # Strip HTML comments before conversion
  plainmd rules add --before "<!--[\s\S]*?-->"

  # Insert at the top of the list
  plainmd rules add --position 1 --ignore-case "todo" "TODO"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.pattern = args[0]
			if len(args) > 1 {
				opts.replacement = args[1]
			}
			opts.out = cmd.OutOrStdout()
			return runAdd(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Rule name (defaults to the pattern)")
	cmd.Flags().BoolVarP(&opts.caseInsensitive, "ignore-case", "i", false, "Match case-insensitively")
	cmd.Flags().BoolVar(&opts.before, "before", false, "Apply before the markdown conversion")
	cmd.Flags().BoolVar(&opts.disabled, "disabled", false, "Add the rule disabled")
	cmd.Flags().IntVarP(&opts.position, "position", "p", 0, "Insert at this 1-based position (default: append)")

	return cmd
}

func runAdd(opts *addOptions) error {
	rule := plaintext.CustomRule{
		Name:                  opts.name,
		Pattern:               opts.pattern,
		Replacement:           opts.replacement,
		CaseInsensitive:       opts.caseInsensitive,
		Enabled:               !opts.disabled,
		ApplyBeforeConversion: opts.before,
	}
	if rule.Name == "" {
		rule.Name = rule.Pattern
	}

	if err := plaintext.ValidateRule(rule); err != nil {
		return err
	}

	path := opts.global.Path()
	cfg, err := loadFile(path)
	if err != nil {
		return err
	}

	renderer, err := opts.global.Renderer(opts.out, cfg)
	if err != nil {
		return err
	}

	rules := cfg.Conversion.CustomRules
	idx := len(rules)
	if opts.position != 0 {
		if opts.position < 1 || opts.position > len(rules)+1 {
			return fmt.Errorf("position %d out of range: must be between 1 and %d", opts.position, len(rules)+1)
		}
		idx = opts.position - 1
	}

	rules = append(rules, plaintext.CustomRule{})
	copy(rules[idx+1:], rules[idx:])
	rules[idx] = rule
	cfg.Conversion.CustomRules = rules

	if err := cfg.Save(path); err != nil {
		return err
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(struct {
			Position int                  `json:"position"`
			Rule     plaintext.CustomRule `json:"rule"`
		}{idx + 1, rule})
	}

	renderer.Success(fmt.Sprintf("Added rule %q", rule.Name))
	renderer.RenderKeyValue("Position", strconv.Itoa(idx+1))
	renderer.RenderKeyValue("Stage", stage(rule.ApplyBeforeConversion)+" conversion")
	return nil
}
