package eval

import "fmt"

// UnboundVariableError means a free variable reached evaluation; the term
// was not closed.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %s", e.Name)
}

// DenotationError is returned for an entity constant the model does not name.
type DenotationError struct {
	Constant string
}

func (e *DenotationError) Error() string {
	return fmt.Sprintf("constant %s does not denote an individual of the model", e.Constant)
}

// NormalFormError reports a term that cannot be evaluated as given, such as
// a leftover redex or a lambda where a value is expected.
type NormalFormError struct {
	Term   string
	Reason string
}

func (e *NormalFormError) Error() string {
	return fmt.Sprintf("cannot evaluate %s: %s", e.Term, e.Reason)
}

// PresuppositionError is returned when a definite description does not pick
// out exactly one individual.
type PresuppositionError struct {
	Term  string
	Count int
}

func (e *PresuppositionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("presupposition failure: nothing satisfies %s", e.Term)
	}
	return fmt.Sprintf("presupposition failure: %d individuals satisfy %s", e.Count, e.Term)
}
