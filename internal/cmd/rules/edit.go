package rules

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
)

type editOptions struct {
	global cmdutil.GlobalOptions
	args   []string
	out    io.Writer
}

// editFunc changes cfg in place and returns the success message.
type editFunc func(cfg *config.Config, args []string) (string, error)

func newEditCmd(use, short, example string, nargs int, edit editFunc) *cobra.Command {
	opts := &editOptions{}

	return &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.args = args
			opts.out = cmd.OutOrStdout()
			return runEdit(opts, edit)
		},
	}
}

func runEdit(opts *editOptions, edit editFunc) error {
	path := opts.global.Path()
	cfg, err := loadFile(path)
	if err != nil {
		return err
	}

	renderer, err := opts.global.Renderer(opts.out, cfg)
	if err != nil {
		return err
	}

	msg, err := edit(cfg, opts.args)
	if err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	renderer.Success(msg)
	return nil
}

// NewCmdRemove creates the rules remove command.
func NewCmdRemove() *cobra.Command {
	cmd := newEditCmd("remove <position>", "Remove a custom rule", `  # Remove the second rule
  plainmd rules remove 2`, 1, removeRule)
	cmd.Aliases = []string{"rm", "delete"}
	return cmd
}

func removeRule(cfg *config.Config, args []string) (string, error) {
	rules := cfg.Conversion.CustomRules
	idx, err := parsePosition(args[0], len(rules))
	if err != nil {
		return "", err
	}

	name := rules[idx].Name
	cfg.Conversion.CustomRules = append(rules[:idx], rules[idx+1:]...)
	return fmt.Sprintf("Removed rule %q", name), nil
}

// NewCmdEnable creates the rules enable command.
func NewCmdEnable() *cobra.Command {
	return newEditCmd("enable <position>", "Enable a custom rule", `  plainmd rules enable 1`, 1, setEnabled(true))
}

// NewCmdDisable creates the rules disable command.
func NewCmdDisable() *cobra.Command {
	return newEditCmd("disable <position>", "Disable a custom rule without removing it", `  plainmd rules disable 1`, 1, setEnabled(false))
}

func setEnabled(enabled bool) editFunc {
	return func(cfg *config.Config, args []string) (string, error) {
		idx, err := parsePosition(args[0], len(cfg.Conversion.CustomRules))
		if err != nil {
			return "", err
		}

		rule := &cfg.Conversion.CustomRules[idx]
		rule.Enabled = enabled
		if enabled {
			return fmt.Sprintf("Enabled rule %q", rule.Name), nil
		}
		return fmt.Sprintf("Disabled rule %q", rule.Name), nil
	}
}

// NewCmdMove creates the rules move command.
func NewCmdMove() *cobra.Command {
	return newEditCmd("move <from> <to>", "Move a custom rule to another position", `  # Make the third rule run first
  plainmd rules move 3 1`, 2, moveRule)
}

// moveRule removes the rule at from and reinserts it so that it ends up at
// position to.
func moveRule(cfg *config.Config, args []string) (string, error) {
	rules := cfg.Conversion.CustomRules
	from, err := parsePosition(args[0], len(rules))
	if err != nil {
		return "", err
	}
	to, err := parsePosition(args[1], len(rules))
	if err != nil {
		return "", err
	}

	rule := rules[from]
	if from < to {
		copy(rules[from:to], rules[from+1:to+1])
	} else {
		copy(rules[to+1:from+1], rules[to:from])
	}
	rules[to] = rule

	return fmt.Sprintf("Moved rule %q to position %d", rule.Name, to+1), nil
}
