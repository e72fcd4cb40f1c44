// factory.go provides constructors for the node variants that carry
// invariants worth centralizing.
package story

import "fmt"

// Number builds a numeric literal.
func Number(v float64) *Literal {
	return &Literal{LitKind: LiteralNumber, Value: v}
}

// String builds a string literal. The value is the unquoted content.
func String(v string) *Literal {
	return &Literal{LitKind: LiteralString, Value: v}
}

// Bool builds a boolean literal.
func Bool(v bool) *Literal {
	return &Literal{LitKind: LiteralBoolean, Value: v}
}

// Null builds the null literal.
func Null() *Literal {
	return &Literal{LitKind: LiteralNull, Value: nil}
}

// Errorf builds an Error node with a formatted message.
func Errorf(context, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Context: context}
}

// UnknownMacro builds the Warning node emitted for an unregistered macro
// name. The parsed arguments and raw hook text travel with it so that a
// downstream consumer can still render or re-emit the call.
func UnknownMacro(name string, args []Node, hookText string) *Warning {
	return &Warning{
		Message:   fmt.Sprintf("unknown macro: (%s:)", name),
		MacroName: name,
		Args:      args,
		HookText:  hookText,
	}
}
