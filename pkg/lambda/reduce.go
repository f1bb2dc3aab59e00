package lambda

import (
	"errors"
	"fmt"
)

// ErrStepLimit is returned when normalization exceeds the reducer's step budget.
var ErrStepLimit = errors.New("lambda: reduction step limit exceeded")

// DefaultStepLimit bounds the number of beta steps per Normalize call.
const DefaultStepLimit = 100000

// Strategy selects which redex is contracted first.
type Strategy int

const (
	// Innermost reduces arguments before contracting the enclosing redex.
	Innermost Strategy = iota
	// Outermost contracts the leftmost-outermost redex first (normal order).
	Outermost
)

func (s Strategy) String() string {
	switch s {
	case Innermost:
		return "innermost"
	case Outermost:
		return "outermost"
	default:
		return "unknown"
	}
}

// ParseStrategy reads a strategy name as printed by String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "innermost", "":
		return Innermost, nil
	case "outermost":
		return Outermost, nil
	}
	return Innermost, fmt.Errorf("unknown reduction strategy %q", s)
}

// Stats holds reduction statistics.
type Stats struct {
	BetaSteps    uint64
	AlphaRenames uint64
}

// Reducer normalizes terms. It is not safe for concurrent use; give each
// goroutine its own Reducer.
type Reducer struct {
	fresh    *Fresh
	strategy Strategy
	limit    uint64
	steps    uint64
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithStrategy sets the reduction order.
func WithStrategy(s Strategy) Option {
	return func(r *Reducer) { r.strategy = s }
}

// WithStepLimit caps the beta steps of each Normalize call. Zero disables the cap.
func WithStepLimit(n uint64) Option {
	return func(r *Reducer) { r.limit = n }
}

func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		fresh: &Fresh{},
		limit: DefaultStepLimit,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// GetStats returns the totals accumulated over every Normalize call.
func (r *Reducer) GetStats() Stats {
	return Stats{
		BetaSteps:    r.steps,
		AlphaRenames: r.fresh.Issued(),
	}
}

// BetaReduce normalizes term with a default Reducer.
func BetaReduce(term Term) (Term, error) {
	return NewReducer().Normalize(term)
}

// Normalize reduces term to beta-normal form.
func (r *Reducer) Normalize(term Term) (Term, error) {
	start := r.steps
	switch r.strategy {
	case Outermost:
		for {
			next, changed, err := r.step(term, start)
			if err != nil {
				return nil, err
			}
			if !changed {
				return term, nil
			}
			term = next
		}
	default:
		return r.inner(term, start)
	}
}

func (r *Reducer) contract(abs Abs, arg Term, start uint64) (Term, error) {
	r.steps++
	if r.limit > 0 && r.steps-start > r.limit {
		return nil, fmt.Errorf("%w after %d steps", ErrStepLimit, r.limit)
	}
	return Substitute(abs.Body, abs.Param, arg, r.fresh), nil
}

func (r *Reducer) inner(t Term, start uint64) (Term, error) {
	switch v := t.(type) {
	case Const, Var:
		return t, nil
	case App:
		fun, err := r.inner(v.Fun, start)
		if err != nil {
			return nil, err
		}
		arg, err := r.inner(v.Arg, start)
		if err != nil {
			return nil, err
		}
		if abs, ok := fun.(Abs); ok {
			res, err := r.contract(abs, arg, start)
			if err != nil {
				return nil, err
			}
			// The argument may now sit in head position of a new redex.
			return r.inner(res, start)
		}
		return App{Fun: fun, Arg: arg}, nil
	case Conn:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			na, err := r.inner(a, start)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return Conn{Op: v.Op, Args: args}, nil
	}

	param, body, ok := binder(t)
	if !ok {
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
	nb, err := r.inner(body, start)
	if err != nil {
		return nil, err
	}
	return rebuild(t, param, nb), nil
}

// step contracts the leftmost-outermost redex of t, if any.
func (r *Reducer) step(t Term, start uint64) (Term, bool, error) {
	switch v := t.(type) {
	case Const, Var:
		return t, false, nil
	case App:
		if abs, ok := v.Fun.(Abs); ok {
			res, err := r.contract(abs, v.Arg, start)
			return res, err == nil, err
		}
		fun, changed, err := r.step(v.Fun, start)
		if err != nil || changed {
			return App{Fun: fun, Arg: v.Arg}, changed, err
		}
		arg, changed, err := r.step(v.Arg, start)
		return App{Fun: v.Fun, Arg: arg}, changed, err
	case Conn:
		for i, a := range v.Args {
			na, changed, err := r.step(a, start)
			if err != nil {
				return nil, false, err
			}
			if changed {
				args := append([]Term(nil), v.Args...)
				args[i] = na
				return Conn{Op: v.Op, Args: args}, true, nil
			}
		}
		return t, false, nil
	}

	param, body, ok := binder(t)
	if !ok {
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
	nb, changed, err := r.step(body, start)
	if err != nil || !changed {
		return t, false, err
	}
	return rebuild(t, param, nb), true, nil
}

// IsNormal reports whether term contains no beta-redex.
func IsNormal(term Term) bool {
	switch v := term.(type) {
	case Const, Var:
		return true
	case App:
		if _, ok := v.Fun.(Abs); ok {
			return false
		}
		return IsNormal(v.Fun) && IsNormal(v.Arg)
	case Conn:
		for _, a := range v.Args {
			if !IsNormal(a) {
				return false
			}
		}
		return true
	}
	_, body, ok := binder(term)
	if !ok {
		panic(fmt.Sprintf("lambda: unknown term type %T", term))
	}
	return IsNormal(body)
}
