// Package proof provides the proof command.
package proof

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/open-story-collective/twine-cli/internal/view"
	"github.com/open-story-collective/twine-cli/pkg/archive"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

type proofOptions struct {
	outPath string
	output  string
	noColor bool
}

// NewCmdProof creates the proof command.
func NewCmdProof() *cobra.Command {
	opts := &proofOptions{}

	cmd := &cobra.Command{
		Use:   "proof <story.html>",
		Short: "Produce a readable proof copy of a story",
		Long: `Render every passage of a story into a single HTML document for
proofreading. Passage text is rendered as markdown; macro syntax is
shown verbatim so reviewers see exactly what the author wrote.`,
		Example: `  # Write a proof copy next to the story
  twc proof story.html --out proof.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runProof(opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.outPath, "out", "", "write the proof copy to a file instead of stdout")

	return cmd
}

func runProof(opts *proofOptions, path string) error {
	st, err := archive.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := renderProof(st)
	if err != nil {
		return err
	}

	if opts.outPath == "" {
		fmt.Print(doc)
		return nil
	}

	if err := os.WriteFile(opts.outPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write proof copy: %w", err)
	}
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.Success(fmt.Sprintf("Wrote proof copy of %d passages to %s", len(st.Passages), opts.outPath))
	return nil
}

// mdParser is a pre-configured goldmark instance with GFM extensions.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func renderProof(st *story.Story) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s (proof copy)</title>\n", html.EscapeString(st.Name))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(st.Name))

	for _, p := range st.Passages {
		title := p.Name
		if title == st.StartPassage {
			title += " (start)"
		}
		fmt.Fprintf(&b, "<section>\n<h2>%s</h2>\n", html.EscapeString(title))
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, "<p><em>tags: %s</em></p>\n", html.EscapeString(strings.Join(p.Tags, ", ")))
		}

		var body bytes.Buffer
		if err := mdParser.Convert([]byte(p.Source), &body); err != nil {
			return "", fmt.Errorf("failed to render passage %q: %w", p.Name, err)
		}
		b.Write(body.Bytes())
		b.WriteString("</section>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
