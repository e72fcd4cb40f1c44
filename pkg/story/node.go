// Package story defines the dialect-independent syntax tree produced by the
// dialect engines. Nodes are built once per passage and never mutated; a
// parent owns its children and nodes are never shared between trees.
package story

// Kind identifies a node variant. It doubles as the "type" discriminator in
// JSON output.
type Kind string

const (
	KindText           Kind = "text"
	KindLiteral        Kind = "literal"
	KindVariableRef    Kind = "variable_ref"
	KindPropertyAccess Kind = "property_access"
	KindArrayAccess    Kind = "array_access"
	KindLengthOf       Kind = "length_of"
	KindDatamapKeys    Kind = "datamap_keys"
	KindDatamapValues  Kind = "datamap_values"
	KindArrayLast      Kind = "array_last"
	KindAssignment     Kind = "assignment"
	KindConditional    Kind = "conditional"
	KindElsif          Kind = "elsif"
	KindElse           Kind = "else"
	KindForLoop        Kind = "for_loop"
	KindChoice         Kind = "choice"
	KindGoto           Kind = "goto"
	KindBinaryOp       Kind = "binary_op"
	KindLogicalOp      Kind = "logical_op"
	KindUnaryOp        Kind = "unary_op"
	KindRawExpression  Kind = "raw_expression"
	KindArrayLiteral   Kind = "array_literal"
	KindTableLiteral   Kind = "table_literal"
	KindDatasetLiteral Kind = "dataset_literal"
	KindRandomChoice   Kind = "random_choice"
	KindRandomNumber   Kind = "random_number"
	KindRange          Kind = "range"
	KindNamedHook      Kind = "named_hook"
	KindHookUpdate     Kind = "hook_update"
	KindHookVisibility Kind = "hook_visibility"
	KindEventListener  Kind = "event_listener"
	KindLiveUpdate     Kind = "live_update"
	KindError          Kind = "error"
	KindWarning        Kind = "warning"
)

// Node is the closed set of syntax-tree variants. The marker method keeps
// the set closed to this package.
type Node interface {
	Kind() Kind
	node()
}

// LiteralKind classifies a Literal node's value.
type LiteralKind string

const (
	LiteralNumber  LiteralKind = "number"
	LiteralString  LiteralKind = "string"
	LiteralBoolean LiteralKind = "boolean"
	LiteralNull    LiteralKind = "null"
)

// VarScope distinguishes story-wide variables ($x) from temporary ones (_x).
// The sigil is stripped from the name but the scope is preserved so that
// downstream converters can reconstruct it.
type VarScope string

const (
	ScopeStory     VarScope = "story"
	ScopeTemporary VarScope = "temporary"
)

// Severity grades an advisory attached to a node.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Advisory is a structured diagnostic carried on nodes whose semantics
// cannot be fully reproduced by static conversion (live/event macros).
type Advisory struct {
	Severity Severity
	Message  string
}

// Text is verbatim prose between macros.
type Text struct {
	Content string
}

// Literal is a constant value: number, string, boolean or null.
type Literal struct {
	LitKind LiteralKind
	Value   any
}

// VariableRef references a story or temporary variable by its sigil-less name.
type VariableRef struct {
	Scope VarScope
	Name  string
}

// PropertyAccess is the generic possessive form: $x's name.
type PropertyAccess struct {
	Target   Node
	Property string
}

// ArrayAccess indexes into a sequence. Index is always 0-based; the
// possessive resolver converts the dialect's 1-based ordinals exactly once.
type ArrayAccess struct {
	Target Node
	Index  Node
}

// LengthOf is the possessive special $x's length.
type LengthOf struct {
	Target Node
}

// DatamapKeys is the possessive special $x's keys.
type DatamapKeys struct {
	Target Node
}

// DatamapValues is the possessive special $x's values.
type DatamapValues struct {
	Target Node
}

// ArrayLast is the possessive special $x's last.
type ArrayLast struct {
	Target Node
}

// Assignment stores a value into a variable, from (set:) or (put:).
type Assignment struct {
	Scope    VarScope
	Variable string
	Operator string // "to" for set, "into" for put
	Value    Node
}

// Conditional is an (if:) branch with its attached hook body.
type Conditional struct {
	Condition Node
	Body      []Node
}

// Elsif is an (else-if:) branch.
type Elsif struct {
	Condition Node
	Body      []Node
}

// Else is the fallback branch; it carries no condition.
type Else struct {
	Body []Node
}

// ForLoop iterates a loop variable over a collection.
type ForLoop struct {
	Variable   string
	Collection Node
	Body       []Node
}

// Choice is a player-visible navigation option.
type Choice struct {
	Text        string
	Destination string
	Body        []Node
}

// Goto is an unconditional jump to another passage.
type Goto struct {
	Destination string
}

// BinaryOp is an arithmetic or comparison operation.
type BinaryOp struct {
	Operator string
	Left     Node
	Right    Node
}

// LogicalOp combines two boolean operands with and/or.
type LogicalOp struct {
	Operator string
	Left     Node
	Right    Node
}

// UnaryOp negates its operand (not, unary minus).
type UnaryOp struct {
	Operator string
	Operand  Node
}

// RawExpression preserves an expression that matched no structural rule.
// Keeping the source text verbatim is deliberate: downstream converters can
// still re-emit it, and nothing is lost.
type RawExpression struct {
	Expression string
}

// ArrayLiteral is an (a:) sequence literal.
type ArrayLiteral struct {
	Items []Node
}

// TableEntry is one key/value pair of a TableLiteral, in source order.
type TableEntry struct {
	Key   Node
	Value Node
}

// TableLiteral is a (dm:) datamap literal.
type TableLiteral struct {
	Entries []TableEntry
}

// DatasetLiteral is a (ds:) set literal.
type DatasetLiteral struct {
	Items []Node
}

// RandomChoice picks one of its options, from (either:). Spread is set when
// the options came from a single ...$collection spread argument.
type RandomChoice struct {
	Options []Node
	Spread  bool
}

// RandomNumber is a (random:) roll between two inclusive bounds.
type RandomNumber struct {
	Min Node
	Max Node
}

// Range is a (range:) sequence between two inclusive bounds.
type Range struct {
	Min Node
	Max Node
}

// NamedHook is a hook definition carrying an identifier. Hidden hooks start
// invisible and are revealed by a (show:) elsewhere in the passage.
type NamedHook struct {
	Name    string
	Content []Node
	Hidden  bool
}

// HookOp is a hook-mutation operation.
type HookOp string

const (
	HookReplace HookOp = "replace"
	HookAppend  HookOp = "append"
	HookPrepend HookOp = "prepend"
	HookShow    HookOp = "show"
	HookHide    HookOp = "hide"
)

// HookUpdate rewrites the content of a named hook.
type HookUpdate struct {
	Operation HookOp
	HookName  string
	Content   []Node
}

// HookVisibility toggles a named hook without changing its content.
type HookVisibility struct {
	Operation HookOp
	HookName  string
}

// EventListener runs its body when a condition first becomes true. Static
// conversion cannot reproduce the live trigger, so the node always carries
// an Advisory saying so.
type EventListener struct {
	Condition Node
	Body      []Node
	Advisory  *Advisory
}

// LiveUpdate re-renders its body on an interval. As with EventListener the
// runtime behavior is not reproducible statically; Advisory records that.
type LiveUpdate struct {
	Interval Node
	Body     []Node
	Advisory *Advisory
}

// Error marks a macro whose semantics are void without its required
// arguments. It replaces the macro's node; scanning continues after it.
type Error struct {
	Message string
	Context string // original macro text, best effort
}

// Warning marks a soft failure, most commonly an unregistered macro. The
// parsed arguments and raw hook text are preserved so nothing is dropped.
type Warning struct {
	Message   string
	MacroName string
	Args      []Node
	HookText  string
}

func (*Text) Kind() Kind           { return KindText }
func (*Literal) Kind() Kind        { return KindLiteral }
func (*VariableRef) Kind() Kind    { return KindVariableRef }
func (*PropertyAccess) Kind() Kind { return KindPropertyAccess }
func (*ArrayAccess) Kind() Kind    { return KindArrayAccess }
func (*LengthOf) Kind() Kind       { return KindLengthOf }
func (*DatamapKeys) Kind() Kind    { return KindDatamapKeys }
func (*DatamapValues) Kind() Kind  { return KindDatamapValues }
func (*ArrayLast) Kind() Kind      { return KindArrayLast }
func (*Assignment) Kind() Kind     { return KindAssignment }
func (*Conditional) Kind() Kind    { return KindConditional }
func (*Elsif) Kind() Kind          { return KindElsif }
func (*Else) Kind() Kind           { return KindElse }
func (*ForLoop) Kind() Kind        { return KindForLoop }
func (*Choice) Kind() Kind         { return KindChoice }
func (*Goto) Kind() Kind           { return KindGoto }
func (*BinaryOp) Kind() Kind       { return KindBinaryOp }
func (*LogicalOp) Kind() Kind      { return KindLogicalOp }
func (*UnaryOp) Kind() Kind        { return KindUnaryOp }
func (*RawExpression) Kind() Kind  { return KindRawExpression }
func (*ArrayLiteral) Kind() Kind   { return KindArrayLiteral }
func (*TableLiteral) Kind() Kind   { return KindTableLiteral }
func (*DatasetLiteral) Kind() Kind { return KindDatasetLiteral }
func (*RandomChoice) Kind() Kind   { return KindRandomChoice }
func (*RandomNumber) Kind() Kind   { return KindRandomNumber }
func (*Range) Kind() Kind          { return KindRange }
func (*NamedHook) Kind() Kind      { return KindNamedHook }
func (*HookUpdate) Kind() Kind     { return KindHookUpdate }
func (*HookVisibility) Kind() Kind { return KindHookVisibility }
func (*EventListener) Kind() Kind  { return KindEventListener }
func (*LiveUpdate) Kind() Kind     { return KindLiveUpdate }
func (*Error) Kind() Kind          { return KindError }
func (*Warning) Kind() Kind        { return KindWarning }

func (*Text) node()           {}
func (*Literal) node()        {}
func (*VariableRef) node()    {}
func (*PropertyAccess) node() {}
func (*ArrayAccess) node()    {}
func (*LengthOf) node()       {}
func (*DatamapKeys) node()    {}
func (*DatamapValues) node()  {}
func (*ArrayLast) node()      {}
func (*Assignment) node()     {}
func (*Conditional) node()    {}
func (*Elsif) node()          {}
func (*Else) node()           {}
func (*ForLoop) node()        {}
func (*Choice) node()         {}
func (*Goto) node()           {}
func (*BinaryOp) node()       {}
func (*LogicalOp) node()      {}
func (*UnaryOp) node()        {}
func (*RawExpression) node()  {}
func (*ArrayLiteral) node()   {}
func (*TableLiteral) node()   {}
func (*DatasetLiteral) node() {}
func (*RandomChoice) node()   {}
func (*RandomNumber) node()   {}
func (*Range) node()          {}
func (*NamedHook) node()      {}
func (*HookUpdate) node()     {}
func (*HookVisibility) node() {}
func (*EventListener) node()  {}
func (*LiveUpdate) node()     {}
func (*Error) node()          {}
func (*Warning) node()        {}
