package lambda

import (
	"fmt"

	"github.com/vic/montague/pkg/types"
)

// Term is a typed logical form. The set of variants is closed: every consumer
// switches over Const, Var, App, Abs, Quant, Iota and Conn.
type Term interface {
	String() string
	isTerm()
}

// Const is an atom introduced by the lexicon: an individual or a predicate symbol.
type Const struct {
	Name string
	Type types.Type
}

func (c Const) String() string { return format(c, false) }
func (Const) isTerm()          {}

// Var represents a variable usage or a binder's parameter.
type Var struct {
	Name string
	Type types.Type
}

func (v Var) String() string { return format(v, false) }
func (Var) isTerm()          {}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string { return format(a, false) }
func (App) isTerm()          {}

// Abs represents an abstraction (lambda).
type Abs struct {
	Param Var
	Body  Term
}

func (a Abs) String() string { return format(a, false) }
func (Abs) isTerm()          {}

// QuantKind selects universal or existential quantification.
type QuantKind int

const (
	Forall QuantKind = iota
	Exists
)

func (k QuantKind) String() string {
	switch k {
	case Forall:
		return "Forall"
	case Exists:
		return "Exists"
	default:
		return "Unknown"
	}
}

// Quant is a quantified formula over individuals.
type Quant struct {
	Kind QuantKind
	Var  Var
	Body Term
}

func (q Quant) String() string { return format(q, false) }
func (Quant) isTerm()          {}

// Iota is a definite description: the unique individual satisfying Body.
type Iota struct {
	Var  Var
	Body Term
}

func (i Iota) String() string { return format(i, false) }
func (Iota) isTerm()          {}

// Op is a truth-functional connective.
type Op int

const (
	And Op = iota
	Or
	Not
	Implies
	Iff
)

func (o Op) String() string {
	switch o {
	case And:
		return "And"
	case Or:
		return "Or"
	case Not:
		return "Not"
	case Implies:
		return "Implies"
	case Iff:
		return "Iff"
	default:
		return "Unknown"
	}
}

// Conn applies a connective to its operands, in order.
type Conn struct {
	Op   Op
	Args []Term
}

func (c Conn) String() string { return format(c, false) }
func (Conn) isTerm()          {}

// NewApp builds fun(arg), rejecting incompatible types.
func NewApp(fun, arg Term) (App, error) {
	ft, err := TypeOf(fun)
	if err != nil {
		return App{}, err
	}
	at, err := TypeOf(arg)
	if err != nil {
		return App{}, err
	}
	if _, ok := types.Compatible(ft, at); !ok {
		return App{}, &TypeError{Op: "apply", Fun: ft, Arg: at, Term: fmt.Sprintf("(%s)(%s)", fun, arg)}
	}
	return App{Fun: fun, Arg: arg}, nil
}

// Apply applies fun to each argument in turn.
func Apply(fun Term, args ...Term) (Term, error) {
	for _, a := range args {
		app, err := NewApp(fun, a)
		if err != nil {
			return nil, err
		}
		fun = app
	}
	return fun, nil
}

// NewAbs builds λparam.body.
func NewAbs(param Var, body Term) (Abs, error) {
	if param.Type == nil {
		return Abs{}, &TypeError{Op: "lambda", Msg: fmt.Sprintf("parameter %s has no type", param.Name)}
	}
	if _, err := typeOf(body, (*scope)(nil).bind(param)); err != nil {
		return Abs{}, err
	}
	return Abs{Param: param, Body: body}, nil
}

// NewQuant builds a quantified formula. Quantifiers range over individuals,
// so v must be an entity and body a truth value.
func NewQuant(kind QuantKind, v Var, body Term) (Quant, error) {
	if err := checkBinder(kind.String(), v, body, nil); err != nil {
		return Quant{}, err
	}
	return Quant{Kind: kind, Var: v, Body: body}, nil
}

// NewIota builds the definite description ιv.body.
func NewIota(v Var, body Term) (Iota, error) {
	if err := checkBinder("Iota", v, body, nil); err != nil {
		return Iota{}, err
	}
	return Iota{Var: v, Body: body}, nil
}

func checkBinder(op string, v Var, body Term, sc *scope) error {
	if !types.Equal(v.Type, types.Entity) {
		return &TypeError{Op: op, Msg: fmt.Sprintf("bound variable %s must have type e, has %v", v.Name, v.Type)}
	}
	bt, err := typeOf(body, sc.bind(v))
	if err != nil {
		return err
	}
	if !types.Equal(bt, types.Truth) {
		return &TypeError{Op: op, Msg: fmt.Sprintf("body must have type t, has %s", bt)}
	}
	return nil
}

// NewConn builds a connective. Not takes one operand, Implies and Iff two,
// And and Or two or more; every operand must be a truth value.
func NewConn(op Op, args ...Term) (Conn, error) {
	if err := checkArity(op, len(args)); err != nil {
		return Conn{}, err
	}
	for i, a := range args {
		at, err := TypeOf(a)
		if err != nil {
			return Conn{}, err
		}
		if !types.Equal(at, types.Truth) {
			return Conn{}, &TypeError{Op: op.String(), Msg: fmt.Sprintf("operand %d has type %s, want t", i, at)}
		}
	}
	return Conn{Op: op, Args: append([]Term(nil), args...)}, nil
}

func checkArity(op Op, n int) error {
	ok := false
	switch op {
	case Not:
		ok = n == 1
	case Implies, Iff:
		ok = n == 2
	case And, Or:
		ok = n >= 2
	}
	if !ok {
		return &TypeError{Op: op.String(), Msg: fmt.Sprintf("wrong number of operands: %d", n)}
	}
	return nil
}

// Must panics on error. It is meant for terms written as literals.
func Must[T Term](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}
