// Package validate runs semantic checks over a parsed story. Each rule is
// an independent pattern match producing findings; rules never mutate the
// tree and never stop each other.
package validate

import (
	"fmt"
	"strings"

	"github.com/open-story-collective/twine-cli/internal/ids"
	"github.com/open-story-collective/twine-cli/pkg/story"
)

// Finding is one validation result.
type Finding struct {
	Rule     string         `json:"rule"`
	Severity story.Severity `json:"severity"`
	Passage  string         `json:"passage"`
	Message  string         `json:"message"`
}

// Rule checks one aspect of a story whose passages are already parsed.
type Rule func(*story.Story) []Finding

// Rules is the default rule set, in reporting order.
func Rules() []Rule {
	return []Rule{
		CheckStructure,
		CheckLinks,
		CheckVariables,
		CheckFlow,
		CheckQuality,
	}
}

// Run applies every default rule and concatenates the findings.
func Run(s *story.Story) []Finding {
	var findings []Finding
	for _, rule := range Rules() {
		findings = append(findings, rule(s)...)
	}
	return findings
}

// CheckStructure flags unnamed, empty and duplicate passages, plus a
// malformed story IFID.
func CheckStructure(s *story.Story) []Finding {
	var out []Finding
	if s.IFID != "" && !ids.ValidIFID(s.IFID) {
		out = append(out, Finding{
			Rule: "structure", Severity: story.SeverityWarning,
			Message: fmt.Sprintf("story IFID %q is not a valid UUID", s.IFID),
		})
	}
	seen := make(map[string]bool)
	for _, p := range s.Passages {
		switch {
		case p.Name == "":
			out = append(out, Finding{
				Rule: "structure", Severity: story.SeverityError,
				Passage: p.PID, Message: "passage has no name",
			})
		case seen[p.Name]:
			out = append(out, Finding{
				Rule: "structure", Severity: story.SeverityError,
				Passage: p.Name, Message: "duplicate passage name",
			})
		default:
			seen[p.Name] = true
		}
		if p.Source == "" {
			out = append(out, Finding{
				Rule: "structure", Severity: story.SeverityWarning,
				Passage: p.Name, Message: "passage is empty",
			})
		}
	}
	return out
}

// CheckLinks flags navigation to passages that do not exist, plus a start
// passage that is missing from the story.
func CheckLinks(s *story.Story) []Finding {
	var out []Finding
	names := s.PassageNames()
	if s.StartPassage != "" && !names[s.StartPassage] {
		out = append(out, Finding{
			Rule: "links", Severity: story.SeverityError,
			Passage: s.StartPassage, Message: "start passage does not exist",
		})
	}
	for _, p := range s.Passages {
		story.WalkList(p.Nodes, func(n story.Node) bool {
			var dest string
			switch x := n.(type) {
			case *story.Choice:
				dest = x.Destination
			case *story.Goto:
				dest = x.Destination
			default:
				return true
			}
			if dest != "" && !names[dest] {
				out = append(out, Finding{
					Rule: "links", Severity: story.SeverityError,
					Passage: p.Name,
					Message: fmt.Sprintf("link to missing passage %q", dest),
				})
			}
			return true
		})
	}
	return out
}

// CheckVariables flags story variables that are read but never assigned
// anywhere in the story. Temporary variables are scoped per passage by the
// runtime; they are checked within their own passage only.
func CheckVariables(s *story.Story) []Finding {
	assigned := make(map[string]bool)
	for _, p := range s.Passages {
		story.WalkList(p.Nodes, func(n story.Node) bool {
			if a, ok := n.(*story.Assignment); ok && a.Scope == story.ScopeStory {
				assigned[a.Variable] = true
			}
			return true
		})
	}

	var out []Finding
	for _, p := range s.Passages {
		tempAssigned := make(map[string]bool)
		reportedHere := make(map[string]bool)
		story.WalkList(p.Nodes, func(n story.Node) bool {
			switch x := n.(type) {
			case *story.Assignment:
				if x.Scope == story.ScopeTemporary {
					tempAssigned[x.Variable] = true
				}
			case *story.VariableRef:
				unassigned := (x.Scope == story.ScopeStory && !assigned[x.Name]) ||
					(x.Scope == story.ScopeTemporary && !tempAssigned[x.Name])
				if unassigned && !reportedHere[x.Name] {
					reportedHere[x.Name] = true
					out = append(out, Finding{
						Rule: "variables", Severity: story.SeverityWarning,
						Passage: p.Name,
						Message: fmt.Sprintf("variable %q is read but never set", x.Name),
					})
				}
			}
			return true
		})
	}
	return out
}

// CheckFlow flags else/else-if branches with no conditional in front of
// them in the same node list.
func CheckFlow(s *story.Story) []Finding {
	var out []Finding
	for _, p := range s.Passages {
		walkBodies(p.Nodes, func(list []story.Node) {
			afterBranch := false
			for _, n := range list {
				switch x := n.(type) {
				case *story.Conditional:
					afterBranch = true
				case *story.Elsif:
					if !afterBranch {
						out = append(out, Finding{
							Rule: "flow", Severity: story.SeverityError,
							Passage: p.Name, Message: "else-if without a preceding if",
						})
					}
				case *story.Else:
					if !afterBranch {
						out = append(out, Finding{
							Rule: "flow", Severity: story.SeverityError,
							Passage: p.Name, Message: "else without a preceding if",
						})
					}
					afterBranch = false
				case *story.Text:
					// Whitespace between branches keeps the chain alive.
					if strings.TrimSpace(x.Content) != "" {
						afterBranch = false
					}
				default:
					afterBranch = false
				}
			}
		})
	}
	return out
}

// CheckQuality tallies the diagnostics embedded in each passage's tree and
// flags passages too large to review comfortably.
func CheckQuality(s *story.Story) []Finding {
	const oversize = 8000
	var out []Finding
	for _, p := range s.Passages {
		errs, warns := p.Diagnostics()
		if len(errs) > 0 {
			out = append(out, Finding{
				Rule: "quality", Severity: story.SeverityError,
				Passage: p.Name,
				Message: fmt.Sprintf("%d conversion error(s) embedded in passage", len(errs)),
			})
		}
		if len(warns) > 0 {
			out = append(out, Finding{
				Rule: "quality", Severity: story.SeverityWarning,
				Passage: p.Name,
				Message: fmt.Sprintf("%d conversion warning(s) embedded in passage", len(warns)),
			})
		}
		if len(p.Source) > oversize {
			out = append(out, Finding{
				Rule: "quality", Severity: story.SeverityWarning,
				Passage: p.Name,
				Message: fmt.Sprintf("passage source is %d characters; consider splitting it", len(p.Source)),
			})
		}
	}
	return out
}

// walkBodies runs fn over every node list in the tree: the top-level list
// and each hook body.
func walkBodies(nodes []story.Node, fn func([]story.Node)) {
	fn(nodes)
	for _, n := range nodes {
		switch x := n.(type) {
		case *story.Conditional:
			walkBodies(x.Body, fn)
		case *story.Elsif:
			walkBodies(x.Body, fn)
		case *story.Else:
			walkBodies(x.Body, fn)
		case *story.ForLoop:
			walkBodies(x.Body, fn)
		case *story.Choice:
			walkBodies(x.Body, fn)
		case *story.NamedHook:
			walkBodies(x.Content, fn)
		case *story.HookUpdate:
			walkBodies(x.Content, fn)
		case *story.EventListener:
			walkBodies(x.Body, fn)
		case *story.LiveUpdate:
			walkBodies(x.Body, fn)
		}
	}
}
