// Package archive extracts stories from published or archived Twine HTML
// files. A story lives in a <tw-storydata> element whose <tw-passagedata>
// children carry the passage source text.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

// Options configures extraction.
type Options struct {
	// NormalizeHTML converts HTML markup found inside passage source to
	// markdown-style prose. Passages without HTML tags pass through
	// untouched, so macro syntax is never disturbed.
	NormalizeHTML bool
}

// ReadFile extracts the first story from an HTML file.
func ReadFile(path string) (*story.Story, error) {
	return ReadFileWithOptions(path, Options{})
}

// ReadFileWithOptions extracts the first story from an HTML file,
// applying opts.
func ReadFileWithOptions(path string, opts Options) (*story.Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open story file: %w", err)
	}
	defer f.Close()
	return ParseWithOptions(f, opts)
}

// Parse extracts the first story from HTML content.
func Parse(r io.Reader) (*story.Story, error) {
	return ParseWithOptions(r, Options{})
}

// ErrNoStory is returned when the input holds no tw-storydata element.
var ErrNoStory = errors.New("no tw-storydata element found")

// ParseWithOptions extracts the first story, applying opts.
func ParseWithOptions(r io.Reader, opts Options) (*story.Story, error) {
	stories, err := parseAll(r, opts)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return nil, ErrNoStory
	}
	return stories[0], nil
}

// ParseAll extracts every story in the input; archive files can hold more
// than one.
func ParseAll(r io.Reader) ([]*story.Story, error) {
	return parseAll(r, Options{})
}

func parseAll(r io.Reader, opts Options) ([]*story.Story, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var stories []*story.Story
	walkElements(doc, "tw-storydata", func(n *html.Node) {
		stories = append(stories, extractStory(n, opts))
	})
	return stories, nil
}

func extractStory(n *html.Node, opts Options) *story.Story {
	s := &story.Story{
		Name:   attr(n, "name"),
		IFID:   attr(n, "ifid"),
		Format: attr(n, "format"),
	}
	startPID := attr(n, "startnode")

	walkElements(n, "tw-passagedata", func(pn *html.Node) {
		p := &story.Passage{
			PID:    attr(pn, "pid"),
			Name:   attr(pn, "name"),
			Source: textContent(pn),
		}
		if tags := strings.TrimSpace(attr(pn, "tags")); tags != "" {
			p.Tags = strings.Fields(tags)
		}
		if opts.NormalizeHTML {
			p.Source = normalizeHTML(p.Source)
		}
		s.Passages = append(s.Passages, p)
		if p.PID == startPID && startPID != "" {
			s.StartPassage = p.Name
		}
	})

	// Stories without a resolvable startnode fall back to the first
	// passage, matching how players open a broken archive.
	if s.StartPassage == "" && len(s.Passages) > 0 {
		s.StartPassage = s.Passages[0].Name
	}
	return s
}

// htmlTagPattern spots real markup so plain prose with stray < characters
// is left alone.
var htmlTagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

func normalizeHTML(source string) string {
	if !htmlTagPattern.MatchString(source) {
		return source
	}
	md, err := htmltomarkdown.ConvertString(source)
	if err != nil {
		return source
	}
	return strings.TrimSpace(md)
}

func walkElements(n *html.Node, name string, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == name {
			fn(c)
			continue
		}
		walkElements(c, name, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent gathers all text below n. Passage source is HTML-escaped in
// well-formed files, so normally this is a single text child; descending
// keeps words from unescaped markup from being dropped.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			visit(gc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return sb.String()
}
