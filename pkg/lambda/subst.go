package lambda

import (
	"fmt"
	"strings"
)

// Fresh produces variable names for alpha-conversion. It is threaded through
// substitution explicitly; a zero Fresh is ready to use.
type Fresh struct {
	n      int
	issued uint64
}

// Name returns base with a numeric suffix, choosing the first candidate that
// taken reports as unused.
func (f *Fresh) Name(base string, taken func(string) bool) string {
	base = strings.TrimRight(base, "0123456789")
	if base == "" {
		base = "x"
	}
	for {
		f.n++
		name := fmt.Sprintf("%s%d", base, f.n)
		if !taken(name) {
			f.issued++
			return name
		}
	}
}

// Issued is the number of names handed out so far.
func (f *Fresh) Issued() uint64 { return f.issued }

// FreeVars returns the names of the free variables of term.
func FreeVars(term Term) map[string]bool {
	free := make(map[string]bool)
	var walk func(Term, map[string]int)
	walk = func(t Term, bound map[string]int) {
		switch v := t.(type) {
		case Var:
			if bound[v.Name] == 0 {
				free[v.Name] = true
			}
		case Const:
		case App:
			walk(v.Fun, bound)
			walk(v.Arg, bound)
		case Conn:
			for _, a := range v.Args {
				walk(a, bound)
			}
		default:
			param, body, ok := binder(t)
			if !ok {
				panic(fmt.Sprintf("lambda: unknown term type %T", t))
			}
			bound[param.Name]++
			walk(body, bound)
			bound[param.Name]--
		}
	}
	walk(term, make(map[string]int))
	return free
}

// Names returns every symbol occurring in term: variables, binders and constants.
func Names(term Term) map[string]bool {
	names := make(map[string]bool)
	collectNames(term, names)
	return names
}

func collectNames(t Term, names map[string]bool) {
	switch v := t.(type) {
	case Var:
		names[v.Name] = true
	case Const:
		names[v.Name] = true
	case App:
		collectNames(v.Fun, names)
		collectNames(v.Arg, names)
	case Conn:
		for _, a := range v.Args {
			collectNames(a, names)
		}
	default:
		param, body, ok := binder(t)
		if !ok {
			panic(fmt.Sprintf("lambda: unknown term type %T", t))
		}
		names[param.Name] = true
		collectNames(body, names)
	}
}

func collectConsts(t Term, names map[string]bool) {
	switch v := t.(type) {
	case Var:
	case Const:
		names[v.Name] = true
	case App:
		collectConsts(v.Fun, names)
		collectConsts(v.Arg, names)
	case Conn:
		for _, a := range v.Args {
			collectConsts(a, names)
		}
	default:
		if _, body, ok := binder(t); ok {
			collectConsts(body, names)
		}
	}
}

// binder splits a binding term into its parameter and body.
func binder(t Term) (Var, Term, bool) {
	switch v := t.(type) {
	case Abs:
		return v.Param, v.Body, true
	case Quant:
		return v.Var, v.Body, true
	case Iota:
		return v.Var, v.Body, true
	}
	return Var{}, nil, false
}

// rebuild returns a binding term of the same kind as t with a new parameter and body.
func rebuild(t Term, param Var, body Term) Term {
	switch v := t.(type) {
	case Abs:
		return Abs{Param: param, Body: body}
	case Quant:
		return Quant{Kind: v.Kind, Var: param, Body: body}
	case Iota:
		return Iota{Var: param, Body: body}
	}
	panic(fmt.Sprintf("lambda: %T is not a binder", t))
}

type substitution struct {
	name  string
	repl  Term
	free  map[string]bool
	taken map[string]bool
	fresh *Fresh
}

// Substitute replaces the free occurrences of v in term with repl. Binders
// that would capture a free variable of repl are renamed first.
func Substitute(term Term, v Var, repl Term, fresh *Fresh) Term {
	if fresh == nil {
		fresh = &Fresh{}
	}
	taken := Names(term)
	for n := range Names(repl) {
		taken[n] = true
	}
	// A binder named like a constant of repl would print ambiguously, so
	// constants count as free here.
	free := FreeVars(repl)
	collectConsts(repl, free)
	s := &substitution{
		name:  v.Name,
		repl:  repl,
		free:  free,
		taken: taken,
		fresh: fresh,
	}
	return s.apply(term)
}

func (s *substitution) apply(t Term) Term {
	switch v := t.(type) {
	case Var:
		if v.Name == s.name {
			return s.repl
		}
		return v
	case Const:
		return v
	case App:
		return App{Fun: s.apply(v.Fun), Arg: s.apply(v.Arg)}
	case Conn:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = s.apply(a)
		}
		return Conn{Op: v.Op, Args: args}
	}

	param, body, ok := binder(t)
	if !ok {
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
	if param.Name == s.name || !FreeVars(body)[s.name] {
		return t
	}
	if s.free[param.Name] {
		renamed := Var{Name: s.fresh.Name(param.Name, s.isTaken), Type: param.Type}
		s.taken[renamed.Name] = true
		body = Substitute(body, param, renamed, s.fresh)
		param = renamed
	}
	return rebuild(t, param, s.apply(body))
}

func (s *substitution) isTaken(name string) bool {
	return s.taken[name]
}
