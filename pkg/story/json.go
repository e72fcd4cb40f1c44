// json.go flattens the node set into plain maps for JSON output. Every
// variant serializes with a "type" discriminator so consumers can dispatch
// without knowing the Go types.
package story

// ToMap converts a single node into a JSON-ready map.
func ToMap(n Node) map[string]any {
	if n == nil {
		return nil
	}
	m := map[string]any{"type": string(n.Kind())}
	switch x := n.(type) {
	case *Text:
		m["content"] = x.Content
	case *Literal:
		m["kind"] = string(x.LitKind)
		m["value"] = x.Value
	case *VariableRef:
		m["scope"] = string(x.Scope)
		m["name"] = x.Name
	case *PropertyAccess:
		m["target"] = ToMap(x.Target)
		m["property"] = x.Property
	case *ArrayAccess:
		m["target"] = ToMap(x.Target)
		m["index"] = ToMap(x.Index)
	case *LengthOf:
		m["target"] = ToMap(x.Target)
	case *DatamapKeys:
		m["target"] = ToMap(x.Target)
	case *DatamapValues:
		m["target"] = ToMap(x.Target)
	case *ArrayLast:
		m["target"] = ToMap(x.Target)
	case *Assignment:
		m["scope"] = string(x.Scope)
		m["variable"] = x.Variable
		m["operator"] = x.Operator
		m["value"] = ToMap(x.Value)
	case *Conditional:
		m["condition"] = ToMap(x.Condition)
		m["body"] = ToMaps(x.Body)
	case *Elsif:
		m["condition"] = ToMap(x.Condition)
		m["body"] = ToMaps(x.Body)
	case *Else:
		m["body"] = ToMaps(x.Body)
	case *ForLoop:
		m["variable"] = x.Variable
		m["collection"] = ToMap(x.Collection)
		m["body"] = ToMaps(x.Body)
	case *Choice:
		m["text"] = x.Text
		m["destination"] = x.Destination
		m["body"] = ToMaps(x.Body)
	case *Goto:
		m["destination"] = x.Destination
	case *BinaryOp:
		m["operator"] = x.Operator
		m["left"] = ToMap(x.Left)
		m["right"] = ToMap(x.Right)
	case *LogicalOp:
		m["operator"] = x.Operator
		m["left"] = ToMap(x.Left)
		m["right"] = ToMap(x.Right)
	case *UnaryOp:
		m["operator"] = x.Operator
		m["operand"] = ToMap(x.Operand)
	case *RawExpression:
		m["expression"] = x.Expression
	case *ArrayLiteral:
		m["items"] = ToMaps(x.Items)
	case *TableLiteral:
		entries := make([]map[string]any, 0, len(x.Entries))
		for _, e := range x.Entries {
			entries = append(entries, map[string]any{
				"key":   ToMap(e.Key),
				"value": ToMap(e.Value),
			})
		}
		m["entries"] = entries
	case *DatasetLiteral:
		m["items"] = ToMaps(x.Items)
	case *RandomChoice:
		m["options"] = ToMaps(x.Options)
		m["spread"] = x.Spread
	case *RandomNumber:
		m["min"] = ToMap(x.Min)
		m["max"] = ToMap(x.Max)
	case *Range:
		m["min"] = ToMap(x.Min)
		m["max"] = ToMap(x.Max)
	case *NamedHook:
		m["name"] = x.Name
		m["content"] = ToMaps(x.Content)
		m["hidden"] = x.Hidden
	case *HookUpdate:
		m["operation"] = string(x.Operation)
		m["hook_name"] = x.HookName
		m["content"] = ToMaps(x.Content)
	case *HookVisibility:
		m["operation"] = string(x.Operation)
		m["hook_name"] = x.HookName
	case *EventListener:
		m["condition"] = ToMap(x.Condition)
		m["body"] = ToMaps(x.Body)
		m["advisory"] = advisoryMap(x.Advisory)
	case *LiveUpdate:
		m["interval"] = ToMap(x.Interval)
		m["body"] = ToMaps(x.Body)
		m["advisory"] = advisoryMap(x.Advisory)
	case *Error:
		m["message"] = x.Message
		m["context"] = x.Context
	case *Warning:
		m["message"] = x.Message
		m["macro_name"] = x.MacroName
		m["args"] = ToMaps(x.Args)
		m["hook_text"] = x.HookText
	}
	return m
}

// ToMaps converts a node list, preserving order.
func ToMaps(nodes []Node) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ToMap(n))
	}
	return out
}

func advisoryMap(a *Advisory) map[string]any {
	if a == nil {
		return nil
	}
	return map[string]any{
		"severity": string(a.Severity),
		"message":  a.Message,
	}
}
