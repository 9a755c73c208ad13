package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/plainmd/internal/cmd/cmdutil"
	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

type testOptions struct {
	global  cmdutil.GlobalOptions
	sample  string
	convert bool
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
}

// NewCmdTest creates the rules test command.
func NewCmdTest() *cobra.Command {
	opts := &testOptions{}

	cmd := &cobra.Command{
		Use:   "test [text]",
		Short: "Apply the enabled rules to a sample",
		Long: `Apply the enabled custom rules to a sample text and print the result.

Before-conversion rules run first, then after-conversion rules, each in list
order. With --convert the full pipeline runs instead, markdown conversion
included. The sample is read from stdin when no text is given.`,
		Example: `  # Try the rules on a string
  plainmd rules test "a -> b"

  # Run the whole pipeline on a file
  plainmd rules test --convert < notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if len(args) > 0 {
				opts.sample = args[0]
			} else {
				opts.in = cmd.InOrStdin()
			}
			opts.out = cmd.OutOrStdout()
			opts.errOut = cmd.ErrOrStderr()
			return runTest(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.convert, "convert", false, "Run the markdown conversion between the two rule stages")

	return cmd
}

func runTest(opts *testOptions) error {
	cfg, err := opts.global.LoadConfig()
	if err != nil {
		return err
	}

	sample := opts.sample
	if opts.in != nil {
		data, err := io.ReadAll(opts.in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sample = string(data)
	}

	converter := plaintext.New(plaintext.WithLogger(cmdutil.NewLogger(opts.errOut)))
	settings := cfg.Conversion

	var result string
	if opts.convert {
		result = converter.Convert(sample, settings)
	} else {
		result = converter.ApplyRules(sample, stageOrder(settings.CustomRules))
	}

	renderer, err := opts.global.Renderer(opts.out, cfg)
	if err != nil {
		return err
	}
	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(map[string]string{"input": sample, "output": result})
	}
	renderer.RenderText(strings.TrimSuffix(result, "\n"))
	return nil
}

// stageOrder lists before-conversion rules ahead of after-conversion rules,
// keeping list order within each stage.
func stageOrder(rules []plaintext.CustomRule) []plaintext.CustomRule {
	ordered := make([]plaintext.CustomRule, 0, len(rules))
	for _, r := range rules {
		if r.ApplyBeforeConversion {
			ordered = append(ordered, r)
		}
	}
	for _, r := range rules {
		if !r.ApplyBeforeConversion {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
