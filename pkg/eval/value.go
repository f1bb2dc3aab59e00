package eval

import (
	"strconv"
	"strings"

	"github.com/vic/montague/pkg/world"
)

// Value is a denotation: an individual, a truth value or a partially
// applied relation.
type Value interface {
	String() string
	isValue()
}

// Individual is a member of the domain.
type Individual string

func (i Individual) String() string { return string(i) }
func (Individual) isValue()         {}

// Bool is a truth value.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (Bool) isValue()         {}

// Relation is a predicate waiting for its remaining arguments.
type Relation struct {
	Pred  string
	Arity int
	Args  []string
}

func (r Relation) String() string {
	parts := append([]string(nil), r.Args...)
	for len(parts) < r.Arity {
		parts = append(parts, "_")
	}
	return r.Pred + "(" + strings.Join(parts, ", ") + ")"
}

func (Relation) isValue() {}

// apply feeds one more argument to the relation. Once saturated it becomes
// a membership test against the model.
func (r Relation) apply(id string, m *world.Model) Value {
	args := make([]string, len(r.Args), len(r.Args)+1)
	copy(args, r.Args)
	args = append(args, id)
	if len(args) < r.Arity {
		return Relation{Pred: r.Pred, Arity: r.Arity, Args: args}
	}
	return Bool(m.Holds(r.Pred, args...))
}

// Assignment maps variable names to individuals. It is persistent: Extend
// returns a new assignment and leaves the receiver untouched, so sibling
// scopes never see each other's bindings. The nil *Assignment is empty.
type Assignment struct {
	name   string
	id     string
	parent *Assignment
}

func (a *Assignment) Extend(name, id string) *Assignment {
	return &Assignment{name: name, id: id, parent: a}
}

// Lookup finds the innermost binding of name.
func (a *Assignment) Lookup(name string) (string, bool) {
	for ; a != nil; a = a.parent {
		if a.name == name {
			return a.id, true
		}
	}
	return "", false
}
