// Package init provides the init command for plainmd.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/config"
	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

// answers holds the values collected by the setup form.
type answers struct {
	Enabled           bool
	BoldMode          string
	ItalicMode        string
	StrikethroughMode string
	BulletChar        string
	EnableCheckbox    bool
	OutputFormat      string
}

type initOptions struct {
	global   cmdutil.GlobalOptions
	defaults bool
	force    bool
	out      io.Writer

	// confirm and ask default to huh prompts.
	confirm func(path string) (bool, error)
	ask     func(a *answers) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize plainmd configuration",
		Long: `Initialize plainmd with your preferred conversion settings.

This command walks you through the common settings: how bold, italic and
strikethrough text is rendered, the bullet character, and checkbox glyphs.
The configuration will be saved to ~/.config/plainmd/config.yml.

Custom rules are managed separately with 'plainmd rules'.`,
		Example: `  # Interactive setup
  plainmd init

  # Write the defaults without prompting
  plainmd init --defaults --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Skip the form and use the default settings")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	if opts.global.NoColor {
		color.NoColor = true
	}

	configPath := opts.global.Path()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		confirm := opts.confirm
		if confirm == nil {
			confirm = confirmOverwrite
		}
		overwrite, err := confirm(configPath)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.out, "Initialization cancelled.")
			return nil
		}
	}

	// Start from the existing file so custom rules survive.
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		cfg = config.Default()
	}

	if !opts.defaults {
		a := answersFrom(cfg)
		ask := opts.ask
		if ask == nil {
			ask = runForm
		}
		if err := ask(&a); err != nil {
			return err
		}
		if err := a.apply(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	} else {
		rules := cfg.Conversion.CustomRules
		cfg.Conversion = plaintext.DefaultSettings()
		cfg.Conversion.CustomRules = rules
		cfg.OutputFormat = ""
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(opts.out, "✓ Configuration saved to %s\n", configPath)
	fmt.Fprintln(opts.out, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.out, "  plainmd convert notes.md")
	fmt.Fprintln(opts.out, "  plainmd rules add --name arrows -- \"->\" \"→\"")

	return nil
}

func answersFrom(cfg *config.Config) answers {
	s := cfg.Conversion
	output := cfg.OutputFormat
	if output == "" {
		output = string(view.FormatTable)
	}
	return answers{
		Enabled:           s.EnableMarkdownConversion,
		BoldMode:          s.BoldMode.String(),
		ItalicMode:        s.ItalicMode.String(),
		StrikethroughMode: s.StrikethroughMode.String(),
		BulletChar:        s.BulletChar,
		EnableCheckbox:    s.EnableCheckbox,
		OutputFormat:      output,
	}
}

// apply copies the answers into cfg. Modes and output format are parsed
// before anything is changed.
func (a answers) apply(cfg *config.Config) error {
	bold, err := plaintext.ParseMode(a.BoldMode)
	if err != nil {
		return fmt.Errorf("bold: %w", err)
	}
	italic, err := plaintext.ParseMode(a.ItalicMode)
	if err != nil {
		return fmt.Errorf("italic: %w", err)
	}
	strike, err := plaintext.ParseMode(a.StrikethroughMode)
	if err != nil {
		return fmt.Errorf("strikethrough: %w", err)
	}
	if err := view.ValidateFormat(a.OutputFormat); err != nil {
		return err
	}

	s := &cfg.Conversion
	s.EnableMarkdownConversion = a.Enabled
	s.BoldMode = bold
	s.ItalicMode = italic
	s.StrikethroughMode = strike
	s.EnableBullet = a.BulletChar != ""
	if a.BulletChar != "" {
		s.BulletChar = a.BulletChar
	}
	s.EnableCheckbox = a.EnableCheckbox
	cfg.OutputFormat = a.OutputFormat
	return nil
}

func modeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Unicode (𝐛𝐨𝐥𝐝, 𝑖𝑡𝑎𝑙𝑖𝑐, s̶t̶r̶i̶k̶e̶)", plaintext.ModeUnicode.String()),
		huh.NewOption("Remove markers", plaintext.ModeRemove.String()),
		huh.NewOption("Keep markdown markers", plaintext.ModeKeep.String()),
	}
}

func runForm(a *answers) error {
	var formatOptions []huh.Option[string]
	for _, f := range view.ValidFormats() {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Convert markdown").
				Description("When off, input passes through unchanged").
				Value(&a.Enabled),

			huh.NewSelect[string]().
				Title("Bold text").
				Options(modeOptions()...).
				Value(&a.BoldMode),

			huh.NewSelect[string]().
				Title("Italic text").
				Options(modeOptions()...).
				Value(&a.ItalicMode),

			huh.NewSelect[string]().
				Title("Strikethrough text").
				Options(modeOptions()...).
				Value(&a.StrikethroughMode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Bullet character").
				Description("Leave empty to drop bullet markers").
				Placeholder("•").
				Value(&a.BulletChar),

			huh.NewConfirm().
				Title("Checkbox glyphs").
				Description("Render task list items as ☑ / ☐").
				Value(&a.EnableCheckbox),

			huh.NewSelect[string]().
				Title("Output format").
				Description("Used by list and show commands").
				Options(formatOptions...).
				Value(&a.OutputFormat),
		),
	)

	return form.Run()
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}
