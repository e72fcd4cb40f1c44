// Package validatecmd provides the validate command.
package validatecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-story-collective/twine-cli/internal/config"
	"github.com/open-story-collective/twine-cli/internal/report"
	"github.com/open-story-collective/twine-cli/internal/validate"
	"github.com/open-story-collective/twine-cli/internal/view"
	"github.com/open-story-collective/twine-cli/pkg/archive"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

type validateOptions struct {
	dialect    string
	errorsOnly bool
	output     string
	noColor    bool
}

// NewCmdValidate creates the validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <story.html>",
		Short: "Check a story for structural problems",
		Long: `Convert a story and run the validation rules over the result:
passage structure, link targets, variable usage, conditional flow and
general quality checks.

The exit code is non-zero when any error-severity finding is reported.`,
		Example: `  # Validate a story
  twc validate story.html

  # Only error-severity findings, as JSON
  twc validate story.html --errors-only -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runValidate(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "story dialect: harlowe, sugarcube (default: auto-detect)")
	cmd.Flags().BoolVar(&opts.errorsOnly, "errors-only", false, "report only error-severity findings")

	return cmd
}

func runValidate(opts *validateOptions, path string) error {
	cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dialect := opts.dialect
	if dialect == "" {
		dialect = cfg.Dialect
	}

	st, err := archive.ReadFileWithOptions(path, archive.Options{NormalizeHTML: cfg.NormalizeHTML})
	if err != nil {
		return err
	}

	if _, err := report.Convert(st, dialect); err != nil {
		return err
	}

	findings := validate.Run(st)
	if opts.errorsOnly {
		kept := findings[:0]
		for _, f := range findings {
			if f.Severity == story.SeverityError {
				kept = append(kept, f)
			}
		}
		findings = kept
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if len(findings) == 0 {
		renderer.Success(fmt.Sprintf("%s passed all checks", st.Name))
		return nil
	}

	if opts.output == "json" {
		if err := renderer.RenderJSON(findings); err != nil {
			return err
		}
	} else {
		headers := []string{"SEVERITY", "RULE", "PASSAGE", "MESSAGE"}
		var rows [][]string
		for _, f := range findings {
			rows = append(rows, []string{
				string(f.Severity),
				f.Rule,
				view.Truncate(f.Passage, 30),
				view.Truncate(f.Message, 70),
			})
		}
		renderer.RenderTable(headers, rows)
	}

	errors := 0
	for _, f := range findings {
		if f.Severity == story.SeverityError {
			errors++
		}
	}
	if errors > 0 {
		return fmt.Errorf("%d error finding(s)", errors)
	}

	renderer.Warning(fmt.Sprintf("%d warning finding(s)", len(findings)))
	return nil
}
