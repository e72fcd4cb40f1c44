// story.go holds the passage and story containers filled by archive
// extraction and consumed by validation and output rendering.
package story

// Passage is one story passage: its source text plus the syntax tree a
// dialect engine produced from it.
type Passage struct {
	PID    string
	Name   string
	Tags   []string
	Source string
	Nodes  []Node
}

// Story is a whole extracted story.
type Story struct {
	Name         string
	IFID         string
	Format       string
	StartPassage string
	Passages     []*Passage
}

// PassageNames returns the set of passage names for link checking.
func (s *Story) PassageNames() map[string]bool {
	names := make(map[string]bool, len(s.Passages))
	for _, p := range s.Passages {
		names[p.Name] = true
	}
	return names
}

// Diagnostics collects every Error and Warning node across all passages, in
// source order per passage. This is the single pass the diagnostic contract
// promises: no side channel, everything lives in the tree.
func (p *Passage) Diagnostics() (errs []*Error, warns []*Warning) {
	WalkList(p.Nodes, func(n Node) bool {
		switch x := n.(type) {
		case *Error:
			errs = append(errs, x)
		case *Warning:
			warns = append(warns, x)
		}
		return true
	})
	return errs, warns
}
