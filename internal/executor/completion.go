// Package executor tree-walks an ast.Program against a Realm, driving
// evaluation per spec.md §4.4: an InterpreterState completion-record
// model, environment push/pop on entry/exit, hoisting, `this`/arguments
// binding, spread/rest, and identifier resolution.
package executor

import "github.com/quill-lang/quill/internal/value"

// Completion tags how the most recent statement terminated, mirroring
// spec.md §4.4's InterpreterState enum.
type Completion int

const (
	Normal Completion = iota
	Return
	Break
	Continue
	Throw
)

// signal carries a Completion plus whatever payload it needs: the
// returned Value for Return, the label for Break/Continue (empty for an
// unlabelled one), or the thrown Value for Throw.
type signal struct {
	kind    Completion
	value   value.Value
	label   string
	thrown  *value.Thrown
}

var normalSignal = signal{kind: Normal}

func returnSignal(v value.Value) signal { return signal{kind: Return, value: v} }
func breakSignal(label string) signal   { return signal{kind: Break, label: label} }
func continueSignal(label string) signal { return signal{kind: Continue, label: label} }
func throwSignal(t *value.Thrown) signal { return signal{kind: Throw, thrown: t} }
