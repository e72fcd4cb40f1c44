// registry.go maps macro names to translator functions. The registry is
// populated before any scan starts and is read-only afterwards; adding a
// macro never touches the scanner.
package harlowe

import (
	"strings"

	"github.com/open-story-collective/twine-cli/pkg/story"
)

// Translator turns one recognized macro call into a syntax-tree node. It
// receives the classified arguments and the raw attached hook (nil when no
// hook was attached) and must be a pure function of those inputs plus the
// Context it may use to recurse.
type Translator func(ctx *Context, args []Value, hook *Hook) story.Node

// Registry is a name-keyed translator table. Names are matched
// case-insensitively.
type Registry struct {
	translators map[string]Translator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{translators: make(map[string]Translator)}
}

// Register adds or replaces the translator for name.
func (r *Registry) Register(name string, fn Translator) {
	r.translators[strings.ToLower(name)] = fn
}

// Lookup returns the translator for name, if registered.
func (r *Registry) Lookup(name string) (Translator, bool) {
	fn, ok := r.translators[strings.ToLower(name)]
	return fn, ok
}

// defaultRegistry carries the baseline macro set. It is built at package
// init and never mutated afterwards, so concurrent scans share it safely.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	registerCore(r)
	registerAdvanced(r)
	return r
}()

// Default returns the registry with the baseline core and advanced macro
// sets registered.
func Default() *Registry {
	return defaultRegistry
}
