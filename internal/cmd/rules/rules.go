// Package rules provides commands for managing custom regex rules.
package rules

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/config"
)

// NewCmdRules creates the rules command.
func NewCmdRules() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"rule"},
		Short:   "Manage custom regex rules",
		Long: `Commands for listing, adding, reordering, and testing custom rules.

Rules are regex find-and-replace steps applied in list order, either before
the markdown conversion or after it. Positions are 1-based.`,
	}

	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdAdd())
	cmd.AddCommand(NewCmdRemove())
	cmd.AddCommand(NewCmdEnable())
	cmd.AddCommand(NewCmdDisable())
	cmd.AddCommand(NewCmdMove())
	cmd.AddCommand(NewCmdTest())

	return cmd
}

// loadFile reads the config file without environment overrides, since rule
// commands write it back.
func loadFile(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// parsePosition converts a 1-based position argument into a slice index.
func parsePosition(arg string, count int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: must be a number", arg)
	}
	if count == 0 {
		return 0, fmt.Errorf("no custom rules configured")
	}
	if pos < 1 || pos > count {
		return 0, fmt.Errorf("position %d out of range: must be between 1 and %d", pos, count)
	}
	return pos - 1, nil
}

func stage(before bool) string {
	if before {
		return "before"
	}
	return "after"
}
