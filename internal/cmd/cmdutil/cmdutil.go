// Package cmdutil holds helpers shared by plainmd subcommands.
package cmdutil

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/config"
	"github.com/open-cli-collective/plainmd/internal/view"
)

// GlobalOptions are the persistent flags defined on the root command.
type GlobalOptions struct {
	ConfigPath string
	// Output is empty unless --output was given explicitly.
	Output  string
	NoColor bool
}

// Globals reads the persistent flags visible to cmd.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	if cmd.Flags().Changed("output") {
		g.Output, _ = cmd.Flags().GetString("output")
	}
	return g
}

// Path returns the config file path in effect.
func (g GlobalOptions) Path() string {
	return config.ResolvePath(g.ConfigPath)
}

// LoadConfig loads the file at Path with environment overrides and validates
// it.
func (g GlobalOptions) LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(g.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'plainmd config reset' to start over)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Renderer returns a view renderer writing to w. The --output flag wins over
// the configured output_format.
func (g GlobalOptions) Renderer(w io.Writer, cfg *config.Config) (*view.Renderer, error) {
	format := g.Output
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == "" {
		format = string(view.FormatTable)
	}

	r := view.NewRenderer(view.Format(format), g.NoColor)
	r.SetWriter(w)
	return r, nil
}

// NewLogger returns the entry converter diagnostics are written to.
func NewLogger(w io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger.WithField("component", "plaintext")
}
