package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
	"github.com/open-cli-collective/plainmd/internal/view"
)

type showOptions struct {
	global cmdutil.GlobalOptions
	out    io.Writer
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective plainmd configuration: defaults, overlaid by the
config file, overlaid by PLAINMD_* environment variables.`,
		Example: `  # Show current config
  plainmd config show

  # As JSON
  plainmd config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.out = cmd.OutOrStdout()
			return runShow(opts)
		},
	}

	return cmd
}

func runShow(opts *showOptions) error {
	configPath := opts.global.Path()

	_, statErr := os.Stat(configPath)

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	renderer, err := opts.global.Renderer(opts.out, cfg)
	if err != nil {
		return err
	}

	if err := renderer.RenderYAML(cfg); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if renderer.Format() == view.FormatJSON {
		return nil
	}

	fmt.Fprintln(opts.out)
	renderer.Note("Config file: " + configPath)
	if os.IsNotExist(statErr) {
		renderer.Note("(file not found, showing defaults)")
	}
	if active := activeEnvVars(); len(active) > 0 {
		renderer.Note("Environment overrides: " + strings.Join(active, ", "))
	}

	return nil
}

func activeEnvVars() []string {
	var active []string
	for _, v := range envVars {
		if val := os.Getenv(v); val != "" {
			active = append(active, v+"="+val)
		}
	}
	return active
}
