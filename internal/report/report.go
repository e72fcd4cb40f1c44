// Package report runs a dialect engine over a story and summarises the
// outcome per passage.
package report

import (
	"fmt"
	"strings"

	"github.com/open-story-collective/twine-cli/internal/config"
	"github.com/open-story-collective/twine-cli/pkg/harlowe"
	"github.com/open-story-collective/twine-cli/pkg/story"
	"github.com/open-story-collective/twine-cli/pkg/sugarcube"
)

// PassageDetail summarises one passage of a conversion run.
type PassageDetail struct {
	Passage  string `json:"passage"`
	Nodes    int    `json:"nodes"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// Report summarises a whole conversion run.
type Report struct {
	Dialect  string          `json:"dialect"`
	Passages int             `json:"passages"`
	Errors   int             `json:"errors"`
	Warnings int             `json:"warnings"`
	Details  []PassageDetail `json:"details,omitempty"`
}

// Clean reports whether the run produced no embedded diagnostics.
func (r *Report) Clean() bool {
	return r.Errors == 0 && r.Warnings == 0
}

// DetectDialect maps a story format name, as recorded in the archive,
// to a dialect. Unrecognised formats map to the auto sentinel.
func DetectDialect(format string) string {
	f := strings.ToLower(format)
	switch {
	case strings.Contains(f, "sugarcube"):
		return config.DialectSugarCube
	case strings.Contains(f, "harlowe"):
		return config.DialectHarlowe
	default:
		return config.DialectAuto
	}
}

// ResolveDialect picks the engine for a story. An explicit override wins,
// then the story's declared format. Harlowe is the default.
func ResolveDialect(s *story.Story, override string) (string, error) {
	switch override {
	case config.DialectHarlowe, config.DialectSugarCube:
		return override, nil
	case config.DialectAuto:
	default:
		return "", fmt.Errorf("unknown dialect %q", override)
	}
	if d := DetectDialect(s.Format); d != config.DialectAuto {
		return d, nil
	}
	return config.DialectHarlowe, nil
}

// Convert parses every passage of s with the chosen dialect engine,
// filling Passage.Nodes in place, and returns a run summary.
func Convert(s *story.Story, dialect string) (*Report, error) {
	d, err := ResolveDialect(s, dialect)
	if err != nil {
		return nil, err
	}

	parse := harlowe.ParsePassage
	if d == config.DialectSugarCube {
		parse = sugarcube.ParsePassage
	}

	rep := &Report{Dialect: d, Passages: len(s.Passages)}
	for _, p := range s.Passages {
		p.Nodes = parse(p.Source)
		errs, warns := p.Diagnostics()
		rep.Errors += len(errs)
		rep.Warnings += len(warns)
		rep.Details = append(rep.Details, PassageDetail{
			Passage:  p.Name,
			Nodes:    len(p.Nodes),
			Errors:   len(errs),
			Warnings: len(warns),
		})
	}
	return rep, nil
}
