// Package passages provides the passages listing command.
package passages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-story-collective/twine-cli/internal/config"
	"github.com/open-story-collective/twine-cli/internal/report"
	"github.com/open-story-collective/twine-cli/internal/view"
	"github.com/open-story-collective/twine-cli/pkg/archive"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

type passagesOptions struct {
	dialect string
	tag     string
	output  string
	noColor bool
}

// NewCmdPassages creates the passages command.
func NewCmdPassages() *cobra.Command {
	opts := &passagesOptions{}

	cmd := &cobra.Command{
		Use:     "passages <story.html>",
		Aliases: []string{"ls"},
		Short:   "List the passages of a story",
		Long:    `List every passage of a story with its tags and outgoing link count.`,
		Example: `  # List all passages
  twc passages story.html

  # Passages carrying a tag, as JSON
  twc passages story.html --tag ending -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runPassages(opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "story dialect: harlowe, sugarcube (default: auto-detect)")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "only passages carrying this tag")

	return cmd
}

func runPassages(opts *passagesOptions, path string) error {
	cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dialect := opts.dialect
	if dialect == "" {
		dialect = cfg.Dialect
	}

	st, err := archive.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := report.Convert(st, dialect); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	headers := []string{"PID", "NAME", "TAGS", "LINKS"}
	var rows [][]string
	for _, p := range st.Passages {
		if opts.tag != "" && !hasTag(p, opts.tag) {
			continue
		}
		name := p.Name
		if name == st.StartPassage {
			name += " (start)"
		}
		rows = append(rows, []string{
			p.PID,
			view.Truncate(name, 50),
			strings.Join(p.Tags, ","),
			fmt.Sprintf("%d", linkCount(p)),
		})
	}

	if len(rows) == 0 {
		renderer.RenderText("No passages found.")
		return nil
	}
	renderer.RenderTable(headers, rows)
	return nil
}

func hasTag(p *story.Passage, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// linkCount tallies outgoing navigation, both links and goto macros.
func linkCount(p *story.Passage) int {
	n := 0
	story.WalkList(p.Nodes, func(node story.Node) bool {
		switch node.(type) {
		case *story.Choice, *story.Goto:
			n++
		}
		return true
	})
	return n
}
