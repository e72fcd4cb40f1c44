// walk.go implements depth-first traversal over the node set.
package story

// Walk calls fn for n and, if fn returns true, for every descendant of n in
// depth-first source order.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *PropertyAccess:
		Walk(x.Target, fn)
	case *ArrayAccess:
		Walk(x.Target, fn)
		Walk(x.Index, fn)
	case *LengthOf:
		Walk(x.Target, fn)
	case *DatamapKeys:
		Walk(x.Target, fn)
	case *DatamapValues:
		Walk(x.Target, fn)
	case *ArrayLast:
		Walk(x.Target, fn)
	case *Assignment:
		Walk(x.Value, fn)
	case *Conditional:
		Walk(x.Condition, fn)
		WalkList(x.Body, fn)
	case *Elsif:
		Walk(x.Condition, fn)
		WalkList(x.Body, fn)
	case *Else:
		WalkList(x.Body, fn)
	case *ForLoop:
		Walk(x.Collection, fn)
		WalkList(x.Body, fn)
	case *Choice:
		WalkList(x.Body, fn)
	case *BinaryOp:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *LogicalOp:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *UnaryOp:
		Walk(x.Operand, fn)
	case *ArrayLiteral:
		WalkList(x.Items, fn)
	case *TableLiteral:
		for _, e := range x.Entries {
			Walk(e.Key, fn)
			Walk(e.Value, fn)
		}
	case *DatasetLiteral:
		WalkList(x.Items, fn)
	case *RandomChoice:
		WalkList(x.Options, fn)
	case *RandomNumber:
		Walk(x.Min, fn)
		Walk(x.Max, fn)
	case *Range:
		Walk(x.Min, fn)
		Walk(x.Max, fn)
	case *NamedHook:
		WalkList(x.Content, fn)
	case *HookUpdate:
		WalkList(x.Content, fn)
	case *EventListener:
		Walk(x.Condition, fn)
		WalkList(x.Body, fn)
	case *LiveUpdate:
		Walk(x.Interval, fn)
		WalkList(x.Body, fn)
	case *Warning:
		WalkList(x.Args, fn)
	}
}

// WalkList walks every node of a slice in order.
func WalkList(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		Walk(n, fn)
	}
}
