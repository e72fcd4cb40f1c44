// Package convert provides the convert command.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-story-collective/twine-cli/internal/config"
	"github.com/open-story-collective/twine-cli/internal/ids"
	"github.com/open-story-collective/twine-cli/internal/report"
	"github.com/open-story-collective/twine-cli/internal/view"
	"github.com/open-story-collective/twine-cli/pkg/archive"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

type convertOptions struct {
	dialect   string
	normalize bool
	summary   bool
	outPath   string
	strict    bool
	output    string
	noColor   bool
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <story.html|passage.twee>",
		Short: "Convert a story archive to dialect-independent syntax trees",
		Long: `Extract a story from a published or archived Twine HTML file and
translate every passage into dialect-independent syntax trees.

Macros the engine does not recognise degrade to warning nodes and
malformed macros degrade to error nodes; neither stops the run, so the
output always covers the whole story.`,
		Example: `  # Convert a Harlowe story to JSON trees
  twc convert story.html

  # Force the SugarCube engine and write to a file
  twc convert story.html --dialect sugarcube --out story.json

  # Just the per-passage diagnostic summary
  twc convert story.html --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runConvert(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "story dialect: harlowe, sugarcube (default: auto-detect)")
	cmd.Flags().BoolVar(&opts.normalize, "normalize-html", false, "convert HTML markup in passage text to plain prose")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a per-passage summary instead of the trees")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "write JSON output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when any passage produced error nodes")

	return cmd
}

func runConvert(opts *convertOptions, path string) error {
	cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	dialect := opts.dialect
	if dialect == "" {
		dialect = cfg.Dialect
	}

	st, err := readStory(path, archive.Options{
		NormalizeHTML: opts.normalize || cfg.NormalizeHTML,
	})
	if err != nil {
		return err
	}
	if st.IFID == "" {
		st.IFID = ids.NewIFID()
	}

	rep, err := report.Convert(st, dialect)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.summary {
		renderSummary(renderer, rep)
	} else if err := writeTrees(renderer, st, rep, opts.outPath); err != nil {
		return err
	}

	if (opts.strict || cfg.Strict) && rep.Errors > 0 {
		return fmt.Errorf("conversion produced %d error node(s)", rep.Errors)
	}
	return nil
}

// readStory extracts a story from an HTML archive. Input without a
// tw-storydata element is treated as a single passage of raw source, so
// authors can convert a passage file straight from their editor.
func readStory(path string, aopts archive.Options) (*story.Story, error) {
	st, err := archive.ReadFileWithOptions(path, aopts)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, archive.ErrNoStory) {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := &story.Passage{PID: "1", Name: name, Source: string(data)}
	return &story.Story{
		Name:         name,
		StartPassage: name,
		Passages:     []*story.Passage{p},
	}, nil
}

func renderSummary(renderer *view.Renderer, rep *report.Report) {
	headers := []string{"PASSAGE", "NODES", "ERRORS", "WARNINGS"}
	var rows [][]string
	for _, d := range rep.Details {
		rows = append(rows, []string{
			view.Truncate(d.Passage, 50),
			fmt.Sprintf("%d", d.Nodes),
			fmt.Sprintf("%d", d.Errors),
			fmt.Sprintf("%d", d.Warnings),
		})
	}
	renderer.RenderTable(headers, rows)

	if rep.Clean() {
		renderer.Success(fmt.Sprintf("%d passages converted cleanly (%s)", rep.Passages, rep.Dialect))
	} else {
		renderer.Warning(fmt.Sprintf("%d passages converted with %d error(s), %d warning(s) (%s)",
			rep.Passages, rep.Errors, rep.Warnings, rep.Dialect))
	}
}

func writeTrees(renderer *view.Renderer, st *story.Story, rep *report.Report, outPath string) error {
	doc := storyDocument(st, rep.Dialect)

	if outPath == "" {
		return renderer.RenderJSON(doc)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	renderer.Success(fmt.Sprintf("Wrote %d passages to %s", rep.Passages, outPath))
	return nil
}

// storyDocument shapes a converted story for JSON output.
func storyDocument(st *story.Story, dialect string) map[string]any {
	passages := make([]map[string]any, 0, len(st.Passages))
	for _, p := range st.Passages {
		passages = append(passages, map[string]any{
			"pid":   p.PID,
			"id":    ids.PassageID(st.IFID, p.Name),
			"name":  p.Name,
			"tags":  p.Tags,
			"nodes": story.ToMaps(p.Nodes),
		})
	}
	return map[string]any{
		"name":          st.Name,
		"ifid":          st.IFID,
		"format":        st.Format,
		"dialect":       dialect,
		"start_passage": st.StartPassage,
		"passages":      passages,
	}
}
