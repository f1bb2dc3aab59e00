package types

import "fmt"

// Type is a semantic type: an entity, a truth value, or a function between types.
// Types are plain values and compare structurally with ==.
type Type interface {
	String() string
	// Concise renders the type abbreviating <x, y> as xy when both sides are atomic.
	Concise() string
	isType()
}

// Basic is an atomic type.
type Basic byte

const (
	Entity Basic = 'e'
	Truth  Basic = 't'
)

func (b Basic) String() string  { return string(rune(b)) }
func (b Basic) Concise() string { return b.String() }
func (Basic) isType()           {}

// Func is the type of functions from Dom to Rng.
type Func struct {
	Dom Type
	Rng Type
}

// Fn builds a function type.
func Fn(dom, rng Type) Func {
	return Func{Dom: dom, Rng: rng}
}

func (f Func) String() string {
	return fmt.Sprintf("<%s, %s>", f.Dom, f.Rng)
}

func (f Func) Concise() string {
	_, da := f.Dom.(Basic)
	_, ra := f.Rng.(Basic)
	if da && ra {
		return f.Dom.String() + f.Rng.String()
	}
	return fmt.Sprintf("<%s, %s>", f.Dom.Concise(), f.Rng.Concise())
}

func (Func) isType() {}

// Common predicate types.
var (
	// Pred1 is <e, t>.
	Pred1 = Fn(Entity, Truth)
	// Pred2 is <e, <e, t>>.
	Pred2 = Fn(Entity, Pred1)
	// Quantifier is <<e, t>, t>, a generalized quantifier.
	Quantifier = Fn(Pred1, Truth)
)

// Equal reports whether a and b are the same type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

// Compatible reports whether a value of type f can be applied to a value of
// type a, returning the type of the application.
func Compatible(f, a Type) (Type, bool) {
	fn, ok := f.(Func)
	if !ok || a == nil || !Equal(fn.Dom, a) {
		return nil, false
	}
	return fn.Rng, true
}

// PredicateArity returns n when t is <e, <e, ... t>> with n entity arguments.
// Truth itself has arity 0. Any other shape is not a first-order predicate.
func PredicateArity(t Type) (int, bool) {
	n := 0
	for {
		switch v := t.(type) {
		case Basic:
			if v == Truth {
				return n, true
			}
			return 0, false
		case Func:
			if v.Dom != Entity {
				return 0, false
			}
			n++
			t = v.Rng
		default:
			return 0, false
		}
	}
}

// UnsupportedError marks a construct that needs a semantic module this system
// does not implement (events, possible worlds, higher-order denotations...).
type UnsupportedError struct {
	Feature string
	Detail  string
}

func (e *UnsupportedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unsupported: %s", e.Feature)
	}
	return fmt.Sprintf("unsupported: %s (%s)", e.Feature, e.Detail)
}
