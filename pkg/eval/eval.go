// Package eval computes denotations of closed, beta-normal terms in a model.
package eval

import (
	"fmt"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
	"github.com/vic/montague/pkg/world"
)

// Evaluate computes the denotation of term with an empty assignment.
func Evaluate(term lambda.Term, m *world.Model) (Value, error) {
	return EvaluateWith(term, m, nil)
}

// EvaluateWith computes the denotation of term under asg. Quantifiers and
// iota extend asg for their body only.
func EvaluateWith(term lambda.Term, m *world.Model, asg *Assignment) (Value, error) {
	if m == nil {
		m = world.New()
	}
	return (&evaluator{model: m}).eval(term, asg)
}

// Satisfiers returns, in domain order, the individuals that make body true
// when bound to v.
func Satisfiers(body lambda.Term, v lambda.Var, m *world.Model, asg *Assignment) ([]string, error) {
	if m == nil {
		m = world.New()
	}
	return (&evaluator{model: m}).satisfiers(body, v, asg)
}

type evaluator struct {
	model *world.Model
}

func (ev *evaluator) eval(t lambda.Term, asg *Assignment) (Value, error) {
	switch v := t.(type) {
	case lambda.Const:
		return ev.constant(v)
	case lambda.Var:
		id, ok := asg.Lookup(v.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: v.Name}
		}
		return Individual(id), nil
	case lambda.App:
		if _, ok := v.Fun.(lambda.Abs); ok {
			return nil, &NormalFormError{Term: v.String(), Reason: "term is not beta-normal"}
		}
		fun, err := ev.eval(v.Fun, asg)
		if err != nil {
			return nil, err
		}
		rel, ok := fun.(Relation)
		if !ok {
			return nil, &NormalFormError{Term: v.String(), Reason: fmt.Sprintf("%s is not a predicate", v.Fun)}
		}
		arg, err := ev.eval(v.Arg, asg)
		if err != nil {
			return nil, err
		}
		id, ok := arg.(Individual)
		if !ok {
			return nil, &NormalFormError{Term: v.String(), Reason: fmt.Sprintf("argument %s is not an individual", v.Arg)}
		}
		return rel.apply(string(id), ev.model), nil
	case lambda.Abs:
		return nil, &NormalFormError{Term: v.String(), Reason: "a lambda abstraction has no value in the model"}
	case lambda.Quant:
		return ev.quantifier(v, asg)
	case lambda.Iota:
		ids, err := ev.satisfiers(v.Body, v.Var, asg)
		if err != nil {
			return nil, err
		}
		if len(ids) != 1 {
			return nil, &PresuppositionError{Term: v.String(), Count: len(ids)}
		}
		return Individual(ids[0]), nil
	case lambda.Conn:
		return ev.connective(v, asg)
	case nil:
		return nil, &NormalFormError{Term: "<nil>", Reason: "missing term"}
	}
	panic(fmt.Sprintf("eval: unknown term %T", t))
}

func (ev *evaluator) constant(c lambda.Const) (Value, error) {
	if c.Type == types.Entity {
		id, ok := ev.model.Resolve(c.Name)
		if !ok {
			return nil, &DenotationError{Constant: c.Name}
		}
		return Individual(id), nil
	}
	arity, ok := types.PredicateArity(c.Type)
	if !ok {
		return nil, &types.UnsupportedError{
			Feature: "higher-order constant",
			Detail:  fmt.Sprintf("%s has type %v", c.Name, c.Type),
		}
	}
	// Unknown predicates are empty; a known one must agree on arity.
	if ext := ev.model.Extension(c.Name); ext.Len() > 0 && ext.Arity() != arity {
		return nil, &world.ArityError{Predicate: c.Name, Want: ext.Arity(), Got: arity}
	}
	if arity == 0 {
		return Bool(ev.model.Holds(c.Name)), nil
	}
	return Relation{Pred: c.Name, Arity: arity}, nil
}

func (ev *evaluator) truth(t lambda.Term, asg *Assignment) (bool, error) {
	val, err := ev.eval(t, asg)
	if err != nil {
		return false, err
	}
	b, ok := val.(Bool)
	if !ok {
		return false, &NormalFormError{Term: t.String(), Reason: fmt.Sprintf("expected a truth value, got %s", val)}
	}
	return bool(b), nil
}

func (ev *evaluator) quantifier(q lambda.Quant, asg *Assignment) (Value, error) {
	for _, id := range ev.model.Domain() {
		ok, err := ev.truth(q.Body, asg.Extend(q.Var.Name, id))
		if err != nil {
			return nil, err
		}
		if q.Kind == lambda.Forall && !ok {
			return Bool(false), nil
		}
		if q.Kind == lambda.Exists && ok {
			return Bool(true), nil
		}
	}
	// Vacuously true for Forall, false for Exists.
	return Bool(q.Kind == lambda.Forall), nil
}

func (ev *evaluator) satisfiers(body lambda.Term, v lambda.Var, asg *Assignment) ([]string, error) {
	var out []string
	for _, id := range ev.model.Domain() {
		ok, err := ev.truth(body, asg.Extend(v.Name, id))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (ev *evaluator) connective(c lambda.Conn, asg *Assignment) (Value, error) {
	switch c.Op {
	case lambda.Not:
		if len(c.Args) != 1 {
			break
		}
		p, err := ev.truth(c.Args[0], asg)
		if err != nil {
			return nil, err
		}
		return Bool(!p), nil
	case lambda.And, lambda.Or:
		if len(c.Args) < 2 {
			break
		}
		// Short-circuit left to right.
		stop := c.Op == lambda.Or
		for _, a := range c.Args {
			p, err := ev.truth(a, asg)
			if err != nil {
				return nil, err
			}
			if p == stop {
				return Bool(stop), nil
			}
		}
		return Bool(!stop), nil
	case lambda.Implies, lambda.Iff:
		if len(c.Args) != 2 {
			break
		}
		p, err := ev.truth(c.Args[0], asg)
		if err != nil {
			return nil, err
		}
		if c.Op == lambda.Implies && !p {
			return Bool(true), nil
		}
		q, err := ev.truth(c.Args[1], asg)
		if err != nil {
			return nil, err
		}
		if c.Op == lambda.Implies {
			return Bool(q), nil
		}
		return Bool(p == q), nil
	}
	return nil, &NormalFormError{Term: c.String(), Reason: fmt.Sprintf("%s with %d operands", c.Op, len(c.Args))}
}
