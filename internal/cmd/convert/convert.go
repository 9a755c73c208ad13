// Package convert provides the convert command.
package convert

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

type convertOptions struct {
	global cmdutil.GlobalOptions

	file          string
	fromHTML      bool
	copy          bool
	write         string
	bold          string
	italic        string
	strikethrough string
	noRules       bool
	raw           bool
	wrap          int

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// copyText defaults to the system clipboard.
	copyText func(string) error
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert markdown to formatted plain text",
		Long: `Convert Markdown into plain text that keeps its visual structure.

Headings become block-glyph prefixes, emphasis is mapped to Unicode bold,
italic and strikethrough characters, lists get bullet and checkbox glyphs.
Custom rules from the config run before and after the conversion.

Input is read from the given file, or from stdin when no file (or "-") is given.`,
		Example: `  # Convert a file
  plainmd convert notes.md

  # Convert stdin and copy the result to the clipboard
  cat notes.md | plainmd convert --copy

  # Convert HTML (e.g. pasted from a browser)
  plainmd convert --from-html page.html

  # Keep ** markers instead of Unicode bold
  plainmd convert --bold keep notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runConvert(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.fromHTML, "from-html", false, "Treat input as HTML and convert it to markdown first")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the clipboard instead of printing it")
	cmd.Flags().StringVarP(&opts.write, "write", "w", "", "Write the result to a file instead of printing it")
	cmd.Flags().StringVar(&opts.bold, "bold", "", "Bold mode: keep, remove, unicode")
	cmd.Flags().StringVar(&opts.italic, "italic", "", "Italic mode: keep, remove, unicode")
	cmd.Flags().StringVar(&opts.strikethrough, "strikethrough", "", "Strikethrough mode: keep, remove, unicode")
	cmd.Flags().BoolVar(&opts.noRules, "no-rules", false, "Skip custom rules")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Disable markdown conversion (custom rules are skipped too)")
	cmd.Flags().IntVar(&opts.wrap, "wrap", 0, "Word-wrap the result to this many columns (0 disables)")

	return cmd
}

func runConvert(opts *convertOptions) error {
	cfg, err := opts.global.LoadConfig()
	if err != nil {
		return err
	}

	status, err := opts.global.Renderer(opts.stderr, cfg)
	if err != nil {
		return err
	}

	settings := cfg.Conversion
	if err := applyFlags(&settings, opts); err != nil {
		return err
	}

	input, err := readInput(opts)
	if err != nil {
		return err
	}

	if opts.fromHTML {
		input, err = plaintext.FromHTML(input)
		if err != nil {
			return err
		}
	}

	converter := plaintext.New(plaintext.WithLogger(cmdutil.NewLogger(opts.stderr)))
	result := plaintext.Wrap(converter.Convert(input, settings), opts.wrap)

	return emit(result, opts, status)
}

// applyFlags overlays the per-invocation flags on the configured settings.
func applyFlags(settings *plaintext.Settings, opts *convertOptions) error {
	modes := []struct {
		flag  string
		value string
		dst   *plaintext.Mode
	}{
		{"bold", opts.bold, &settings.BoldMode},
		{"italic", opts.italic, &settings.ItalicMode},
		{"strikethrough", opts.strikethrough, &settings.StrikethroughMode},
	}
	for _, m := range modes {
		if m.value == "" {
			continue
		}
		mode, err := plaintext.ParseMode(m.value)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", m.flag, err)
		}
		*m.dst = mode
	}

	if opts.noRules {
		settings.CustomRules = nil
	}
	if opts.raw {
		settings.EnableMarkdownConversion = false
	}
	return nil
}

func readInput(opts *convertOptions) (string, error) {
	if opts.file == "" || opts.file == "-" {
		data, err := io.ReadAll(opts.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// emit delivers the result. Status lines go to status so stdout only ever
// carries converted text.
func emit(result string, opts *convertOptions, status *view.Renderer) error {
	if opts.write != "" {
		if err := os.WriteFile(opts.write, []byte(result), 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		status.Success("Saved to " + opts.write)
	}

	if opts.copy {
		copyText := opts.copyText
		if copyText == nil {
			copyText = clipboard.WriteAll
		}
		if err := copyText(result); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		status.Success("Copied to clipboard")
	}

	if opts.write == "" && !opts.copy {
		_, err := fmt.Fprint(opts.stdout, result)
		if err == nil && !strings.HasSuffix(result, "\n") && result != "" {
			_, err = fmt.Fprintln(opts.stdout)
		}
		return err
	}
	return nil
}
