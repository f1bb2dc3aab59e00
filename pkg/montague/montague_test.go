package montague

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/montague/pkg/combinator"
	"github.com/vic/montague/pkg/eval"
	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/lexicon"
	"github.com/vic/montague/pkg/types"
	"github.com/vic/montague/pkg/world"
)

func tiny(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex := lexicon.New()
	require.NoError(t, lex.Insert("Every", lambda.MustParse("LP.LQ.Ax.P(x) -> Q(x)", types.Fn(types.Pred1, types.Quantifier))))
	require.NoError(t, lex.Insert("man", lambda.MustParse("Lx.man(x)", types.Pred1)))
	require.NoError(t, lex.Insert("walks", lambda.MustParse("Lx.walk(x)", types.Pred1)))
	return lex
}

func twoMen(t *testing.T, walkers ...string) *world.Model {
	t.Helper()
	m := world.New()
	m.AddIndividual("d1")
	m.AddIndividual("d2")
	require.NoError(t, m.AddTuple("man", "d1"))
	require.NoError(t, m.AddTuple("man", "d2"))
	for _, w := range walkers {
		require.NoError(t, m.AddTuple("walk", w))
	}
	return m
}

func TestEveryManWalks(t *testing.T) {
	tokens := []string{"Every", "man", "walks"}

	res, err := Interpret(tokens, tiny(t), twoMen(t, "d1", "d2"))
	require.NoError(t, err)
	assert.False(t, res.Ambiguous())
	truth, ok := res.Truth()
	require.True(t, ok)
	assert.True(t, truth)
	assert.Equal(t, "Every man walks", res.Readings[0].Text)

	res, err = Interpret(tokens, tiny(t), twoMen(t, "d1"))
	require.NoError(t, err)
	truth, ok = res.Truth()
	require.True(t, ok)
	assert.False(t, truth)
}

func TestUnknownWord(t *testing.T) {
	_, err := Interpret([]string{"flibbertigibbet", "walks"}, tiny(t), twoMen(t))
	var uw *lexicon.UnknownWordError
	require.True(t, errors.As(err, &uw))
	assert.Equal(t, "flibbertigibbet", uw.Word)
}

func TestAmbiguousSentence(t *testing.T) {
	lex := tiny(t)
	require.NoError(t, lex.Insert("Bo", lambda.Const{Name: "d1", Type: types.Entity}))
	require.NoError(t, lex.Insert("Bo", lambda.MustParse("LP.Ex.man(x) & P(x)", types.Quantifier)))

	res, err := Interpret([]string{"Bo", "walks"}, lex, twoMen(t, "d2"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Readings), 2)
	assert.True(t, res.Ambiguous())
	_, ok := res.Truth()
	assert.False(t, ok)
	assert.Equal(t, eval.Bool(false), res.Readings[0].Value)
	assert.Equal(t, eval.Bool(true), res.Readings[1].Value)
}

func TestNoParse(t *testing.T) {
	lex := tiny(t)
	require.NoError(t, lex.Insert("Bo", lambda.Const{Name: "d1", Type: types.Entity}))
	_, err := Interpret([]string{"Bo", "Bo"}, lex, twoMen(t))
	var np *combinator.NoParseError
	require.True(t, errors.As(err, &np))

	// A full parse exists, but not of type t.
	_, err = Interpret([]string{"Every", "man"}, lex, twoMen(t))
	require.True(t, errors.As(err, &np))
	assert.NotEmpty(t, np.Found)
}

func TestTranslateKeepsAllTypes(t *testing.T) {
	cands, err := Translate([]string{"Every", "man"}, tiny(t))
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, types.Quantifier, cands[0].Type)
	assert.Equal(t, "LQ.Ax.man(x) -> Q(x)", lambda.ASCII(cands[0].Term))
}

func fragmentWorld(t *testing.T) *world.Model {
	t.Helper()
	m, err := world.Load(strings.NewReader(`
individuals: [John, Mary, Sue]
names: {j: John, m: Mary, s: Sue}
predicates:
  Good: [John, Sue]
  Bad: [Mary]
  Child: [Sue]
  Man: [John]
  Woman: [Mary, Sue]
  Walks: [John]
  Loves: [[John, Mary]]
`))
	require.NoError(t, err)
	return m
}

func TestFragmentSentences(t *testing.T) {
	lex := lexicon.Fragment()
	m := fragmentWorld(t)
	tests := []struct {
		sentence string
		want     []bool
	}{
		{"John is good", []bool{true}},
		{"Mary is good", []bool{false}},
		{"every child is good", []bool{true}},
		{"every woman is good", []bool{false}},
		{"some woman is bad", []bool{true}},
		{"no man is bad", []bool{true}},
		{"the child is good", []bool{true}},
		{"Mary is not good", []bool{true}},
		{"every good is child", []bool{false}},
		{"John loves Mary", []bool{true, false}},
		{"every man walks", []bool{true}},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			res, err := Interpret(strings.Fields(tt.sentence), lex, m)
			require.NoError(t, err)
			got := make([]bool, len(res.Readings))
			for i, r := range res.Readings {
				b, ok := r.Value.(eval.Bool)
				require.True(t, ok)
				got[i] = bool(b)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresuppositionFailure(t *testing.T) {
	_, err := Interpret(strings.Fields("the woman is good"), lexicon.Fragment(), fragmentWorld(t))
	var pe *eval.PresuppositionError
	assert.True(t, errors.As(err, &pe), "got %v", err)
}

func TestSession(t *testing.T) {
	s := NewSession(lexicon.Fragment(), fragmentWorld(t), WithCacheTTL(0), WithCombinator(combinator.WithWorkers(2)))
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID))

	tokens := strings.Fields("Mary is good")
	res, err := s.Interpret(tokens)
	require.NoError(t, err)
	truth, _ := res.Truth()
	assert.False(t, truth)
	assert.Equal(t, 1, s.Cached())

	// A new world changes the answer but not the translation.
	m := world.New()
	m.AddIndividual("Mary")
	require.NoError(t, m.Name("m", "Mary"))
	require.NoError(t, m.AddTuple("Good", "Mary"))
	s.SetWorld(m)
	res, err = s.Interpret(tokens)
	require.NoError(t, err)
	truth, _ = res.Truth()
	assert.True(t, truth)
	assert.Equal(t, 1, s.Cached())

	cands, err := s.Translate(strings.Fields("the child"))
	require.NoError(t, err)
	assert.Equal(t, types.Entity, cands[0].Type)
	assert.Equal(t, 2, s.Cached())

	_, err = s.Interpret(strings.Fields("the child"))
	var np *combinator.NoParseError
	assert.True(t, errors.As(err, &np))

	_, err = s.Interpret(strings.Fields("John is whorlious"))
	var uw *lexicon.UnknownWordError
	assert.True(t, errors.As(err, &uw))
	assert.Equal(t, 2, s.Cached(), "failures are not cached")

	s.Forget()
	assert.Equal(t, 0, s.Cached())
}

func TestPredicateArityMismatch(t *testing.T) {
	lex := lexicon.New()
	require.NoError(t, lex.Insert("John", lambda.Const{Name: "j", Type: types.Entity}))
	require.NoError(t, lex.Insert("loves", lambda.MustParse("Lx.Loves(x)", types.Pred1)))

	_, err := Interpret([]string{"John", "loves"}, lex, fragmentWorld(t))
	var ae *world.ArityError
	require.True(t, errors.As(err, &ae), "got %v", err)
	assert.Equal(t, "Loves", ae.Predicate)
}
