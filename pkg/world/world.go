// Package world holds finite relational models that formulas are evaluated in.
package world

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Tuple is an ordered list of individual ids.
type Tuple []string

func (t Tuple) key() string { return strings.Join(t, "\x00") }

func (t Tuple) String() string { return "(" + strings.Join(t, ", ") + ")" }

// Extension is the set of tuples a predicate holds of. All tuples of one
// predicate have the same length.
type Extension struct {
	arity  int
	tuples []Tuple
	index  *set.Set[string]
}

func newExtension(arity int) *Extension {
	return &Extension{arity: arity, index: set.New[string](0)}
}

// Arity is the tuple length, or 0 for an empty extension.
func (x *Extension) Arity() int {
	if x == nil {
		return 0
	}
	return x.arity
}

// Contains reports whether tuple is in the extension. A nil extension is empty.
func (x *Extension) Contains(tuple Tuple) bool {
	return x != nil && x.index.Contains(tuple.key())
}

// Tuples returns the members in insertion order.
func (x *Extension) Tuples() []Tuple {
	if x == nil {
		return nil
	}
	out := make([]Tuple, len(x.tuples))
	copy(out, x.tuples)
	return out
}

func (x *Extension) Len() int {
	if x == nil {
		return 0
	}
	return len(x.tuples)
}

// UnknownIndividualError reports a reference to an individual outside the domain.
type UnknownIndividualError struct {
	ID string
}

func (e *UnknownIndividualError) Error() string {
	return fmt.Sprintf("individual %q is not in the domain", e.ID)
}

// ArityError reports a tuple whose length disagrees with earlier tuples.
type ArityError struct {
	Predicate string
	Want, Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("predicate %s takes %d arguments, tuple has %d", e.Predicate, e.Want, e.Got)
}

// Model is a domain of individuals plus predicate extensions and a table
// naming individuals. It is built up front and read-only while evaluating.
type Model struct {
	order      []string
	domain     *set.Set[string]
	extensions map[string]*Extension
	names      map[string]string
}

func New() *Model {
	return &Model{
		domain:     set.New[string](0),
		extensions: make(map[string]*Extension),
		names:      make(map[string]string),
	}
}

// AddIndividual puts id in the domain. Adding it twice is harmless.
func (m *Model) AddIndividual(id string) {
	if m.domain.Insert(id) {
		m.order = append(m.order, id)
	}
}

// AddTuple records that pred holds of the given individuals, which must all
// be in the domain.
func (m *Model) AddTuple(pred string, ids ...string) error {
	if len(ids) == 0 {
		return fmt.Errorf("predicate %s: empty tuple", pred)
	}
	for _, id := range ids {
		if !m.Has(id) {
			return fmt.Errorf("predicate %s: %w", pred, &UnknownIndividualError{ID: id})
		}
	}
	ext, ok := m.extensions[pred]
	if !ok {
		ext = newExtension(len(ids))
		m.extensions[pred] = ext
	}
	if ext.arity != len(ids) {
		return &ArityError{Predicate: pred, Want: ext.arity, Got: len(ids)}
	}
	tuple := append(Tuple(nil), ids...)
	if ext.index.Insert(tuple.key()) {
		ext.tuples = append(ext.tuples, tuple)
	}
	return nil
}

// Name makes the entity constant refer to the individual id.
func (m *Model) Name(constant, id string) error {
	if !m.Has(id) {
		return fmt.Errorf("name %s: %w", constant, &UnknownIndividualError{ID: id})
	}
	m.names[constant] = id
	return nil
}

// Resolve finds the individual an entity constant denotes: its entry in the
// name table, or the individual whose id is the constant itself.
func (m *Model) Resolve(constant string) (string, bool) {
	if id, ok := m.names[constant]; ok {
		return id, true
	}
	if m.Has(constant) {
		return constant, true
	}
	return "", false
}

// Domain returns the individuals in insertion order.
func (m *Model) Domain() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Has reports whether id is an individual of the domain.
func (m *Model) Has(id string) bool { return m.domain.Contains(id) }

// Extension returns the tuples pred holds of. Unknown predicates have an
// empty extension.
func (m *Model) Extension(pred string) *Extension {
	return m.extensions[pred]
}

// Holds reports whether pred holds of the tuple.
func (m *Model) Holds(pred string, tuple ...string) bool {
	return m.extensions[pred].Contains(tuple)
}

// Predicates lists the predicates with a non-empty extension.
func (m *Model) Predicates() []string {
	preds := set.NewTreeSet[string](cmp.Compare[string])
	for p := range m.extensions {
		preds.Insert(p)
	}
	return preds.Slice()
}

// Names returns a copy of the name table.
func (m *Model) Names() map[string]string {
	out := make(map[string]string, len(m.names))
	for k, v := range m.names {
		out[k] = v
	}
	return out
}
