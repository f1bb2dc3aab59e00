// Package combinator assembles word meanings into phrase meanings. There is
// no grammar: any two adjacent spans combine when one applies to the other.
package combinator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/lexicon"
	"github.com/vic/montague/pkg/types"
)

// Candidate is one reading of the tokens [Start, End).
type Candidate struct {
	Text  string
	Term  lambda.Term
	Type  types.Type
	Start int
	End   int
}

// NoParseError is returned when the whole sentence has no reading, or none
// of the wanted type. Found lists the types of the readings there were.
type NoParseError struct {
	Tokens []string
	Want   types.Type
	Found  []types.Type
}

func (e *NoParseError) Error() string {
	sentence := strings.Join(e.Tokens, " ")
	if len(e.Found) == 0 {
		return fmt.Sprintf("no parse for %q", sentence)
	}
	found := lo.Map(e.Found, func(t types.Type, _ int) string { return t.String() })
	return fmt.Sprintf("no reading of type %v for %q (found %s)", e.Want, sentence, strings.Join(found, ", "))
}

type span struct {
	start, end int
}

// Combinator runs the chart parser over a lexicon. It only reads the
// lexicon, so one Combinator may parse from several goroutines.
type Combinator struct {
	lex      *lexicon.Lexicon
	workers  int
	limit    uint64
	strategy lambda.Strategy
}

type Option func(*Combinator)

// WithWorkers computes the split points of a span concurrently using up to n
// goroutines. n <= 1 parses sequentially. Results are identical either way.
func WithWorkers(n int) Option {
	return func(c *Combinator) { c.workers = n }
}

// WithStepLimit bounds the beta steps spent normalizing each combination.
func WithStepLimit(n uint64) Option {
	return func(c *Combinator) { c.limit = n }
}

func WithStrategy(s lambda.Strategy) Option {
	return func(c *Combinator) { c.strategy = s }
}

func New(lex *lexicon.Lexicon, opts ...Option) *Combinator {
	c := &Combinator{lex: lex, limit: lambda.DefaultStepLimit, workers: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reducer returns a fresh Reducer for one combination, so renamed binders
// come out the same in sequential and parallel mode.
func (c *Combinator) reducer() *lambda.Reducer {
	return lambda.NewReducer(lambda.WithStepLimit(c.limit), lambda.WithStrategy(c.strategy))
}

// Parse returns every reading of the full token sequence, of any type.
//
// Spans are filled bottom-up by length into a table keyed by their bounds.
// A span's readings come from each split point in order; for each pair of
// left and right readings, left(right) is tried before right(left). Readings
// that are alpha-equivalent to an earlier one in the same span are dropped.
func (c *Combinator) Parse(tokens []string) ([]Candidate, error) {
	n := len(tokens)
	if n == 0 {
		return nil, &NoParseError{}
	}

	chart := make(map[span][]Candidate, n*(n+1)/2)
	// Look every word up before composing anything.
	for i, tok := range tokens {
		entries, err := c.lex.Lookup(tok)
		if err != nil {
			return nil, &lexicon.UnknownWordError{Word: tok, Position: i}
		}
		cands := make([]Candidate, len(entries))
		for j, e := range entries {
			cands[j] = Candidate{Text: tok, Term: e.Term, Type: e.Type, Start: i, End: i + 1}
		}
		chart[span{i, i + 1}] = dedup(cands)
	}

	for length := 2; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			end := start + length
			text := strings.Join(tokens[start:end], " ")
			var cands []Candidate
			var err error
			if c.workers > 1 {
				cands, err = c.spanParallel(chart, text, start, end)
			} else {
				cands, err = c.spanSequential(chart, text, start, end)
			}
			if err != nil {
				return nil, err
			}
			chart[span{start, end}] = dedup(cands)
		}
	}

	full := chart[span{0, n}]
	if len(full) == 0 {
		return nil, &NoParseError{Tokens: append([]string(nil), tokens...)}
	}
	return full, nil
}

// ParseAs is Parse restricted to readings of type want.
func (c *Combinator) ParseAs(tokens []string, want types.Type) ([]Candidate, error) {
	all, err := c.Parse(tokens)
	if err != nil {
		return nil, err
	}
	got := Filter(all, want)
	if len(got) == 0 {
		return nil, &NoParseError{
			Tokens: append([]string(nil), tokens...),
			Want:   want,
			Found:  lo.Uniq(lo.Map(all, func(c Candidate, _ int) types.Type { return c.Type })),
		}
	}
	return got, nil
}

// Filter keeps the candidates of type want.
func Filter(cands []Candidate, want types.Type) []Candidate {
	return lo.Filter(cands, func(c Candidate, _ int) bool {
		return types.Equal(c.Type, want)
	})
}

func (c *Combinator) spanSequential(chart map[span][]Candidate, text string, start, end int) ([]Candidate, error) {
	var out []Candidate
	for k := start + 1; k < end; k++ {
		got, err := c.combineSplit(chart[span{start, k}], chart[span{k, end}], text)
		if err != nil {
			return nil, err
		}
		out = append(out, got...)
	}
	return out, nil
}

// spanParallel fans the split points of one span out to a bounded errgroup.
// Shorter spans are complete at this point and the table is only read.
func (c *Combinator) spanParallel(chart map[span][]Candidate, text string, start, end int) ([]Candidate, error) {
	results := make([][]Candidate, end-start-1)
	var g errgroup.Group
	g.SetLimit(c.workers)
	for k := start + 1; k < end; k++ {
		left, right := chart[span{start, k}], chart[span{k, end}]
		g.Go(func() error {
			got, err := c.combineSplit(left, right, text)
			if err != nil {
				return err
			}
			results[k-start-1] = got
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lo.Flatten(results), nil
}

func (c *Combinator) combineSplit(left, right []Candidate, text string) ([]Candidate, error) {
	var out []Candidate
	for _, l := range left {
		for _, r := range right {
			if got, ok, err := c.apply(l, r, l.Start, r.End, text); err != nil {
				return nil, err
			} else if ok {
				out = append(out, got)
			}
			if got, ok, err := c.apply(r, l, l.Start, r.End, text); err != nil {
				return nil, err
			} else if ok {
				out = append(out, got)
			}
		}
	}
	return out, nil
}

// apply builds fun(arg) when the types allow it and normalizes the result.
func (c *Combinator) apply(fun, arg Candidate, start, end int, text string) (Candidate, bool, error) {
	rt, ok := types.Compatible(fun.Type, arg.Type)
	if !ok {
		return Candidate{}, false, nil
	}
	app, err := lambda.NewApp(fun.Term, arg.Term)
	if err != nil {
		return Candidate{}, false, err
	}
	nf, err := c.reducer().Normalize(app)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("normalizing %q: %w", text, err)
	}
	return Candidate{Text: text, Term: nf, Type: rt, Start: start, End: end}, true, nil
}

func dedup(cands []Candidate) []Candidate {
	return lo.UniqBy(cands, func(c Candidate) string { return lambda.AlphaKey(c.Term) })
}
