// Package montague interprets sentences: it composes word meanings with the
// combinator and evaluates the resulting formulas in a world model.
package montague

import (
	"fmt"

	"github.com/vic/montague/pkg/combinator"
	"github.com/vic/montague/pkg/eval"
	"github.com/vic/montague/pkg/lexicon"
	"github.com/vic/montague/pkg/types"
	"github.com/vic/montague/pkg/world"
)

// Reading is one sentence meaning together with its value in the model.
type Reading struct {
	combinator.Candidate
	Value eval.Value
}

// Result holds every truth-valued reading of a sentence, in parse order.
// More than one reading means the sentence is ambiguous; that is not an error.
type Result struct {
	Tokens   []string
	Readings []Reading
}

// Ambiguous reports whether there is more than one reading.
func (r *Result) Ambiguous() bool { return len(r.Readings) > 1 }

// Truth returns the truth value when the sentence has exactly one reading.
func (r *Result) Truth() (value bool, ok bool) {
	if len(r.Readings) != 1 {
		return false, false
	}
	b, ok := r.Readings[0].Value.(eval.Bool)
	return bool(b), ok
}

// Interpret parses tokens into sentence meanings of type t and evaluates each
// one in m.
func Interpret(tokens []string, lex *lexicon.Lexicon, m *world.Model, opts ...combinator.Option) (*Result, error) {
	cands, err := combinator.New(lex, opts...).ParseAs(tokens, types.Truth)
	if err != nil {
		return nil, err
	}
	return evaluate(tokens, cands, m)
}

// Translate returns every reading of the full token sequence, whatever its type.
func Translate(tokens []string, lex *lexicon.Lexicon, opts ...combinator.Option) ([]combinator.Candidate, error) {
	return combinator.New(lex, opts...).Parse(tokens)
}

func evaluate(tokens []string, cands []combinator.Candidate, m *world.Model) (*Result, error) {
	res := &Result{Tokens: append([]string(nil), tokens...), Readings: make([]Reading, 0, len(cands))}
	for _, c := range cands {
		val, err := eval.Evaluate(c.Term, m)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", c.Term, err)
		}
		res.Readings = append(res.Readings, Reading{Candidate: c, Value: val})
	}
	return res, nil
}
