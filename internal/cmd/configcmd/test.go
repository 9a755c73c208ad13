package configcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

type testOptions struct {
	global cmdutil.GlobalOptions
	out    io.Writer
}

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	opts := &testOptions{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Validate the configuration and compile every rule",
		Long: `Check that the configuration file parses, that its values are valid, and
that every custom rule pattern compiles. Invalid rules are skipped during
conversion, so this is the place to find them.`,
		Example: `  # Validate config
  plainmd config test`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.out = cmd.OutOrStdout()
			return runTest(opts)
		},
	}

	return cmd
}

func runTest(opts *testOptions) error {
	// The report is a checklist, whatever the configured output format.
	r := view.NewRenderer(view.FormatTable, opts.global.NoColor)
	r.SetWriter(opts.out)

	configPath := opts.global.Path()
	fmt.Fprintf(opts.out, "Testing configuration at %s...\n", configPath)

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		r.Error(fmt.Sprintf("Config file could not be read: %v", err))
		fmt.Fprintln(opts.out, "\nReset it with: plainmd config reset")
		return fmt.Errorf("failed to load config: %w", err)
	}
	r.Success("Config loaded")

	if err := cfg.Validate(); err != nil {
		r.Error(fmt.Sprintf("Invalid config: %v", err))
		return fmt.Errorf("invalid config: %w", err)
	}
	r.Success("Settings valid")

	var failed int
	for i, rule := range cfg.Conversion.CustomRules {
		if err := plaintext.ValidateRule(rule); err != nil {
			failed++
			r.Error(fmt.Sprintf("Rule %d: %v", i+1, err))
			continue
		}
		msg := fmt.Sprintf("Rule %d %q compiles", i+1, rule.Name)
		if !rule.Enabled {
			msg += " (disabled)"
		}
		r.Success(msg)
	}

	if failed > 0 {
		fmt.Fprintln(opts.out, "\nFix or remove them with: plainmd rules list")
		return fmt.Errorf("%d custom rule(s) failed to compile", failed)
	}

	fmt.Fprintf(opts.out, "\n%d custom rule(s) OK\n", len(cfg.Conversion.CustomRules))
	return nil
}
