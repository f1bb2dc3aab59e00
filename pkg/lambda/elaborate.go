package lambda

import (
	"fmt"

	"github.com/vic/montague/pkg/types"
)

// Untyped syntax produced by the parser.
type expr interface {
	position() int
}

type symExpr struct {
	name string
	pos  int
}

type callExpr struct {
	fun expr
	arg expr
}

type bindExpr struct {
	kind binderKind
	name string
	body expr
	pos  int
	// param is the parameter's type, filled in during inference.
	param *mtype
}

type opExpr struct {
	op   Op
	args []expr
}

func (e *symExpr) position() int  { return e.pos }
func (e *callExpr) position() int { return e.fun.position() }
func (e *bindExpr) position() int { return e.pos }
func (e *opExpr) position() int   { return e.args[0].position() }

type mkind int

const (
	mMeta mkind = iota
	mBasic
	mFn
)

// mtype is a type that may still contain unknowns during inference.
type mtype struct {
	kind  mkind
	id    int
	basic types.Basic
	dom   *mtype
	rng   *mtype
}

func fromType(t types.Type) *mtype {
	switch v := t.(type) {
	case types.Basic:
		return &mtype{kind: mBasic, basic: v}
	case types.Func:
		return &mtype{kind: mFn, dom: fromType(v.Dom), rng: fromType(v.Rng)}
	}
	panic(fmt.Sprintf("lambda: unknown type %T", t))
}

var (
	mEntity = &mtype{kind: mBasic, basic: types.Entity}
	mTruth  = &mtype{kind: mBasic, basic: types.Truth}
)

// elaborator assigns types to untyped syntax by unification. Every occurrence
// of a free symbol shares one type; unknowns left at the end become e.
type elaborator struct {
	input  string
	metas  int
	binds  map[int]*mtype
	consts map[string]*mtype
}

func newElaborator(input string) *elaborator {
	return &elaborator{
		input:  input,
		binds:  make(map[int]*mtype),
		consts: make(map[string]*mtype),
	}
}

func (el *elaborator) meta() *mtype {
	el.metas++
	return &mtype{kind: mMeta, id: el.metas}
}

func (el *elaborator) find(m *mtype) *mtype {
	for m.kind == mMeta {
		b, ok := el.binds[m.id]
		if !ok {
			return m
		}
		m = b
	}
	return m
}

func (el *elaborator) occurs(id int, m *mtype) bool {
	m = el.find(m)
	switch m.kind {
	case mMeta:
		return m.id == id
	case mFn:
		return el.occurs(id, m.dom) || el.occurs(id, m.rng)
	}
	return false
}

func (el *elaborator) unify(a, b *mtype) bool {
	a, b = el.find(a), el.find(b)
	switch {
	case a.kind == mMeta && b.kind == mMeta && a.id == b.id:
		return true
	case a.kind == mMeta:
		if el.occurs(a.id, b) {
			return false
		}
		el.binds[a.id] = b
		return true
	case b.kind == mMeta:
		return el.unify(b, a)
	case a.kind == mBasic && b.kind == mBasic:
		return a.basic == b.basic
	case a.kind == mFn && b.kind == mFn:
		return el.unify(a.dom, b.dom) && el.unify(a.rng, b.rng)
	}
	return false
}

func (el *elaborator) show(m *mtype) string {
	m = el.find(m)
	switch m.kind {
	case mMeta:
		return fmt.Sprintf("?%d", m.id)
	case mBasic:
		return m.basic.String()
	default:
		return fmt.Sprintf("<%s, %s>", el.show(m.dom), el.show(m.rng))
	}
}

func (el *elaborator) resolve(m *mtype) types.Type {
	m = el.find(m)
	switch m.kind {
	case mBasic:
		return m.basic
	case mFn:
		return types.Fn(el.resolve(m.dom), el.resolve(m.rng))
	default:
		return types.Entity
	}
}

func (el *elaborator) mismatch(e expr, a, b *mtype) error {
	return &TypeError{
		Op:  "formula",
		Msg: fmt.Sprintf("%q at offset %d: %s does not match %s", el.input, e.position(), el.show(a), el.show(b)),
	}
}

func (el *elaborator) infer(e expr, env map[string]*mtype) (*mtype, error) {
	switch v := e.(type) {
	case *symExpr:
		if m, ok := env[v.name]; ok {
			return m, nil
		}
		m, ok := el.consts[v.name]
		if !ok {
			m = el.meta()
			el.consts[v.name] = m
		}
		return m, nil
	case *callExpr:
		fun, err := el.infer(v.fun, env)
		if err != nil {
			return nil, err
		}
		arg, err := el.infer(v.arg, env)
		if err != nil {
			return nil, err
		}
		res := el.meta()
		want := &mtype{kind: mFn, dom: arg, rng: res}
		if !el.unify(fun, want) {
			return nil, el.mismatch(v, fun, want)
		}
		return res, nil
	case *opExpr:
		for _, a := range v.args {
			m, err := el.infer(a, env)
			if err != nil {
				return nil, err
			}
			if !el.unify(m, mTruth) {
				return nil, el.mismatch(a, m, mTruth)
			}
		}
		return mTruth, nil
	case *bindExpr:
		if v.kind == bindLambda {
			v.param = el.meta()
		} else {
			v.param = mEntity
		}
		old, had := env[v.name]
		env[v.name] = v.param
		body, err := el.infer(v.body, env)
		if had {
			env[v.name] = old
		} else {
			delete(env, v.name)
		}
		if err != nil {
			return nil, err
		}
		switch v.kind {
		case bindLambda:
			return &mtype{kind: mFn, dom: v.param, rng: body}, nil
		case bindIota:
			if !el.unify(body, mTruth) {
				return nil, el.mismatch(v.body, body, mTruth)
			}
			return mEntity, nil
		default:
			if !el.unify(body, mTruth) {
				return nil, el.mismatch(v.body, body, mTruth)
			}
			return mTruth, nil
		}
	}
	panic(fmt.Sprintf("lambda: unknown syntax node %T", e))
}

func (el *elaborator) build(e expr, env map[string]Var) (Term, error) {
	switch v := e.(type) {
	case *symExpr:
		if bound, ok := env[v.name]; ok {
			return bound, nil
		}
		return Const{Name: v.name, Type: el.resolve(el.consts[v.name])}, nil
	case *callExpr:
		fun, err := el.build(v.fun, env)
		if err != nil {
			return nil, err
		}
		arg, err := el.build(v.arg, env)
		if err != nil {
			return nil, err
		}
		return NewApp(fun, arg)
	case *opExpr:
		args := make([]Term, len(v.args))
		for i, a := range v.args {
			t, err := el.build(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return NewConn(v.op, args...)
	case *bindExpr:
		param := Var{Name: v.name, Type: el.resolve(v.param)}
		old, had := env[v.name]
		env[v.name] = param
		body, err := el.build(v.body, env)
		if had {
			env[v.name] = old
		} else {
			delete(env, v.name)
		}
		if err != nil {
			return nil, err
		}
		switch v.kind {
		case bindLambda:
			return NewAbs(param, body)
		case bindForall:
			return NewQuant(Forall, param, body)
		case bindExists:
			return NewQuant(Exists, param, body)
		default:
			return NewIota(param, body)
		}
	}
	panic(fmt.Sprintf("lambda: unknown syntax node %T", e))
}

// Parse reads a formula and types it. When want is non-nil the whole formula
// is checked against it, which usually pins down the type of every symbol.
// Names bound by a binder become variables; all other names are constants.
func Parse(input string, want types.Type) (Term, error) {
	p := NewParser(input)
	e, err := p.parseSyntax()
	if err != nil {
		return nil, err
	}
	el := newElaborator(input)
	got, err := el.infer(e, make(map[string]*mtype))
	if err != nil {
		return nil, err
	}
	if want != nil {
		w := fromType(want)
		if !el.unify(got, w) {
			return nil, el.mismatch(e, got, w)
		}
	}
	return el.build(e, make(map[string]Var))
}

// MustParse is Parse for formulas known to be valid.
func MustParse(input string, want types.Type) Term {
	t, err := Parse(input, want)
	if err != nil {
		panic(err)
	}
	return t
}
