package lambda

import (
	"fmt"

	"github.com/vic/montague/pkg/types"
)

// TypeError reports an ill-typed term.
type TypeError struct {
	Op   string
	Fun  types.Type
	Arg  types.Type
	Term string
	Msg  string
}

func (e *TypeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("type error in %s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("type error: cannot apply %v to %v in %s", e.Fun, e.Arg, e.Term)
}

// scope records the declared type of each enclosing binder, innermost first.
type scope struct {
	name string
	typ  types.Type
	next *scope
}

func (s *scope) bind(v Var) *scope {
	return &scope{name: v.Name, typ: v.Type, next: s}
}

func (s *scope) lookup(name string) (types.Type, bool) {
	for ; s != nil; s = s.next {
		if s.name == name {
			return s.typ, true
		}
	}
	return nil, false
}

// TypeOf computes the type of a term, re-validating every node on the way so
// terms assembled without the checked constructors are still caught. A bound
// variable must carry the type its binder declares.
func TypeOf(term Term) (types.Type, error) {
	return typeOf(term, nil)
}

func typeOf(term Term, sc *scope) (types.Type, error) {
	switch t := term.(type) {
	case Const:
		if t.Type == nil {
			return nil, &TypeError{Op: "constant", Msg: fmt.Sprintf("%s has no type", t.Name)}
		}
		return t.Type, nil
	case Var:
		if t.Type == nil {
			return nil, &TypeError{Op: "variable", Msg: fmt.Sprintf("%s has no type", t.Name)}
		}
		if bt, ok := sc.lookup(t.Name); ok && !types.Equal(bt, t.Type) {
			return nil, &TypeError{Op: "variable", Msg: fmt.Sprintf("%s has type %s but is bound at %s", t.Name, t.Type, bt)}
		}
		return t.Type, nil
	case App:
		ft, err := typeOf(t.Fun, sc)
		if err != nil {
			return nil, err
		}
		at, err := typeOf(t.Arg, sc)
		if err != nil {
			return nil, err
		}
		rt, ok := types.Compatible(ft, at)
		if !ok {
			return nil, &TypeError{Op: "apply", Fun: ft, Arg: at, Term: t.String()}
		}
		return rt, nil
	case Abs:
		if t.Param.Type == nil {
			return nil, &TypeError{Op: "lambda", Msg: fmt.Sprintf("parameter %s has no type", t.Param.Name)}
		}
		bt, err := typeOf(t.Body, sc.bind(t.Param))
		if err != nil {
			return nil, err
		}
		return types.Fn(t.Param.Type, bt), nil
	case Quant:
		if err := checkBinder(t.Kind.String(), t.Var, t.Body, sc); err != nil {
			return nil, err
		}
		return types.Truth, nil
	case Iota:
		if err := checkBinder("Iota", t.Var, t.Body, sc); err != nil {
			return nil, err
		}
		return types.Entity, nil
	case Conn:
		if err := checkArity(t.Op, len(t.Args)); err != nil {
			return nil, err
		}
		for i, a := range t.Args {
			at, err := typeOf(a, sc)
			if err != nil {
				return nil, err
			}
			if !types.Equal(at, types.Truth) {
				return nil, &TypeError{Op: t.Op.String(), Msg: fmt.Sprintf("operand %d has type %s, want t", i, at)}
			}
		}
		return types.Truth, nil
	case nil:
		return nil, &TypeError{Op: "term", Msg: "nil term"}
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", term))
	}
}
