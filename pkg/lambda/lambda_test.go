package lambda

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/montague/pkg/types"
)

var (
	et  = types.Pred1
	eet = types.Pred2
	x   = Var{Name: "x", Type: types.Entity}
	y   = Var{Name: "y", Type: types.Entity}
	z   = Var{Name: "z", Type: types.Entity}
	j   = Const{Name: "j", Type: types.Entity}
	m   = Const{Name: "m", Type: types.Entity}

	good  = Const{Name: "Good", Type: et}
	child = Const{Name: "Child", Type: et}
	loves = Const{Name: "Loves", Type: eet}
)

func app(f Term, args ...Term) Term {
	return Must(Apply(f, args...))
}

func abs(v Var, body Term) Term {
	return Must(NewAbs(v, body))
}

func TestConstructorsRejectIllTypedTerms(t *testing.T) {
	_, err := NewApp(good, good)
	var te *TypeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, et, te.Fun)
	assert.Equal(t, et, te.Arg)

	_, err = NewApp(j, m)
	assert.True(t, errors.As(err, &te))

	_, err = NewQuant(Forall, Var{Name: "P", Type: et}, app(good, j))
	assert.True(t, errors.As(err, &te), "quantifying over predicates is rejected")

	_, err = NewQuant(Exists, x, x)
	assert.True(t, errors.As(err, &te), "body must be a truth value")

	_, err = NewConn(Not, app(good, j), app(good, m))
	assert.True(t, errors.As(err, &te), "Not is unary")

	_, err = NewConn(And, app(good, j))
	assert.True(t, errors.As(err, &te), "And needs two operands")

	_, err = NewConn(Or, app(good, j), j)
	assert.True(t, errors.As(err, &te), "operands are truth values")

	_, err = NewAbs(Var{Name: "x"}, j)
	assert.True(t, errors.As(err, &te), "parameters carry a type")

	// x is bound as an entity but used as a predicate.
	q := Const{Name: "Q", Type: types.Quantifier}
	xet := Var{Name: "x", Type: et}
	_, err = NewAbs(x, app(q, xet))
	assert.True(t, errors.As(err, &te), "occurrence type must match its binder")

	_, err = NewQuant(Forall, x, app(q, xet))
	assert.True(t, errors.As(err, &te))

	_, err = NewIota(x, app(q, xet))
	assert.True(t, errors.As(err, &te))

	// Built without the constructors, TypeOf still catches it.
	_, err = TypeOf(App{Fun: Abs{Param: x, Body: App{Fun: q, Arg: xet}}, Arg: j})
	assert.True(t, errors.As(err, &te))

	// An inner binder shadows the outer one.
	shadowed := Abs{Param: xet, Body: Abs{Param: x, Body: App{Fun: good, Arg: x}}}
	got, err := TypeOf(shadowed)
	require.NoError(t, err)
	assert.Equal(t, types.Fn(et, et), got)
}

func TestTypeOf(t *testing.T) {
	every := MustParse("LP.LQ.Ax.P(x) -> Q(x)", types.Fn(et, types.Fn(et, types.Truth)))
	tests := []struct {
		name string
		term Term
		want types.Type
	}{
		{"constant", j, types.Entity},
		{"saturated predicate", app(loves, j, m), types.Truth},
		{"partial relation", app(loves, j), et},
		{"abstraction", abs(x, app(good, x)), et},
		{"determiner", every, types.Fn(et, types.Fn(et, types.Truth))},
		{"determiner applied", app(every, abs(x, app(child, x))), types.Quantifier},
		{"iota", Must(NewIota(x, app(good, x))), types.Entity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeOf(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeOfRevalidatesUncheckedTerms(t *testing.T) {
	// Built without NewApp, so only TypeOf can notice.
	bad := App{Fun: j, Arg: m}
	_, err := TypeOf(bad)
	var te *TypeError
	assert.True(t, errors.As(err, &te))

	_, err = TypeOf(Conn{Op: And, Args: []Term{j, m}})
	assert.True(t, errors.As(err, &te))

	_, err = TypeOf(nil)
	assert.True(t, errors.As(err, &te))
}

// TestSubstituteAvoidsCapture substitutes a free y under a binder named y.
// A naive substitution would produce λy.Loves(y, y), capturing the free y.
func TestSubstituteAvoidsCapture(t *testing.T) {
	term := abs(y, app(loves, x, y))
	got := Substitute(term, x, y, &Fresh{})

	res, ok := got.(Abs)
	require.True(t, ok, "got %v", got)
	assert.NotEqual(t, "y", res.Param.Name)
	assert.True(t, FreeVars(got)["y"], "y must stay free in %v", got)
	assert.True(t, AlphaEqual(got, abs(z, app(loves, y, z))), "got %v", got)

	gotType, err := TypeOf(got)
	require.NoError(t, err)
	assert.Equal(t, et, gotType)
}

func TestSubstituteUnderQuantifiersAndIota(t *testing.T) {
	q := Must(NewQuant(Exists, y, app(loves, x, y)))
	got := Substitute(q, x, y, nil)
	assert.True(t, FreeVars(got)["y"])
	assert.True(t, AlphaEqual(got, Must(NewQuant(Exists, z, app(loves, y, z)))), "got %v", got)

	i := Must(NewIota(y, app(loves, x, y)))
	got = Substitute(i, x, y, nil)
	assert.True(t, AlphaEqual(got, Must(NewIota(z, app(loves, y, z)))), "got %v", got)
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	term := abs(x, app(good, x))
	got := Substitute(term, x, j, nil)
	assert.True(t, Equal(term, got), "bound x is not replaced")

	term = Must(NewConn(And, app(good, x), Must(NewQuant(Forall, x, app(child, x)))))
	got = Substitute(term, x, j, nil)
	want := Must(NewConn(And, app(good, j), Must(NewQuant(Forall, x, app(child, x)))))
	assert.True(t, Equal(want, got), "got %v", got)
}

func TestFreshNamesAvoidConstants(t *testing.T) {
	// The renamed binder must not collide with the constant y1.
	y1 := Const{Name: "y1", Type: types.Entity}
	term := abs(y, Must(NewConn(And, app(loves, x, y), app(good, y1))))
	got := Substitute(term, x, y, &Fresh{})
	res := got.(Abs)
	assert.NotEqual(t, "y", res.Param.Name)
	assert.NotEqual(t, "y1", res.Param.Name)
}

func TestSubstituteRenamesBindersShadowingConstants(t *testing.T) {
	term := MustParse("(Ly.Lx.R(x, y))(x)", types.Pred1)
	got, err := BetaReduce(term)
	require.NoError(t, err)
	res, ok := got.(Abs)
	require.True(t, ok, "got %v", got)
	assert.NotEqual(t, "x", res.Param.Name)
	assert.True(t, AlphaEqual(got, MustParse("Lz.R(z, x)", types.Pred1)), "got %v", got)
}

func TestBetaReduce(t *testing.T) {
	// Cases follow the classic simplification examples.
	tests := []struct {
		name string
		in   Term
		want Term
	}{
		{
			"identity",
			app(abs(x, x), j),
			j,
		},
		{
			"nested call",
			app(Must(Parse("Lx.Ly.Good(x) & Good(y)", eet)), j, m),
			Must(NewConn(And, app(good, j), app(good, m))),
		},
		{
			"lambda argument",
			app(Must(Parse("LP.P(j)", types.Fn(et, types.Truth))), abs(x, Must(NewConn(Or, app(good, x), app(child, x))))),
			Must(NewConn(Or, app(good, j), app(child, j))),
		},
		{
			"every child",
			app(MustParse("LP.LQ.Ax.P(x) -> Q(x)", types.Fn(et, types.Fn(et, types.Truth))), abs(x, app(child, x))),
			MustParse("LQ.Ax.Child(x) -> Q(x)", types.Quantifier),
		},
		{
			"already normal",
			app(loves, j, m),
			app(loves, j, m),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BetaReduce(tt.in)
			require.NoError(t, err)
			assert.True(t, AlphaEqual(tt.want, got), "want %v, got %v", tt.want, got)
			assert.True(t, IsNormal(got))
		})
	}
}

// TestBetaReduceAvoidsCapture reduces (λx.λy.Loves(x, y))(y) with y free.
func TestBetaReduceAvoidsCapture(t *testing.T) {
	term := app(abs(x, abs(y, app(loves, x, y))), y)
	got, err := BetaReduce(term)
	require.NoError(t, err)
	assert.True(t, FreeVars(got)["y"])
	assert.True(t, AlphaEqual(got, abs(z, app(loves, y, z))), "got %v", got)
}

func reducibleTerms() []Term {
	every := MustParse("LP.LQ.Ax.P(x) -> Q(x)", types.Fn(et, types.Fn(et, types.Truth)))
	some := MustParse("LP.LQ.Ex.P(x) & Q(x)", types.Fn(et, types.Fn(et, types.Truth)))
	is := MustParse("LP.P", types.Fn(et, et))
	the := MustParse("LP.ix.P(x)", types.Fn(et, types.Entity))
	twice := MustParse("LR.Lx.R(x, x)", types.Fn(eet, et))
	return []Term{
		app(every, abs(x, app(child, x)), app(is, abs(x, app(good, x)))),
		app(some, app(is, abs(y, app(good, y))), abs(x, app(twice, loves, x))),
		app(app(is, abs(x, app(good, x))), app(the, abs(x, app(child, x)))),
		app(abs(x, app(abs(y, app(loves, y, x)), x)), j),
		app(MustParse("LP.LQ.LR.P(R) & Q(R)", types.Fn(types.Quantifier, types.Fn(types.Quantifier, types.Fn(et, types.Truth)))),
			app(every, abs(x, app(child, x))), app(some, abs(x, app(good, x))), abs(x, app(loves, x, x))),
	}
}

func TestConfluence(t *testing.T) {
	for _, term := range reducibleTerms() {
		t.Run(term.String(), func(t *testing.T) {
			in, err := NewReducer(WithStrategy(Innermost)).Normalize(term)
			require.NoError(t, err)
			out, err := NewReducer(WithStrategy(Outermost)).Normalize(term)
			require.NoError(t, err)
			assert.True(t, AlphaEqual(in, out), "innermost %v, outermost %v", in, out)
		})
	}
}

func TestTypePreservationAndIdempotence(t *testing.T) {
	for _, term := range reducibleTerms() {
		t.Run(term.String(), func(t *testing.T) {
			before, err := TypeOf(term)
			require.NoError(t, err)

			once, err := BetaReduce(term)
			require.NoError(t, err)
			after, err := TypeOf(once)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			twice, err := BetaReduce(once)
			require.NoError(t, err)
			assert.True(t, Equal(once, twice), "once %v, twice %v", once, twice)
		})
	}
}

func TestStepLimit(t *testing.T) {
	term := reducibleTerms()[0]
	_, err := NewReducer(WithStepLimit(1)).Normalize(term)
	assert.True(t, errors.Is(err, ErrStepLimit))

	_, err = NewReducer(WithStepLimit(1), WithStrategy(Outermost)).Normalize(term)
	assert.True(t, errors.Is(err, ErrStepLimit))
}

func TestReducerStats(t *testing.T) {
	r := NewReducer()
	_, err := r.Normalize(app(abs(x, abs(y, app(loves, x, y))), y))
	require.NoError(t, err)
	stats := r.GetStats()
	assert.Equal(t, uint64(1), stats.BetaSteps)
	assert.Equal(t, uint64(1), stats.AlphaRenames)
}

func TestAlphaEqual(t *testing.T) {
	assert.True(t, AlphaEqual(abs(x, app(good, x)), abs(y, app(good, y))))
	assert.False(t, AlphaEqual(abs(x, app(good, x)), abs(x, app(good, j))))
	assert.False(t, AlphaEqual(abs(x, app(good, x)), abs(x, app(child, x))))
	// A free variable is never alpha-equal to a bound one.
	assert.False(t, AlphaEqual(abs(x, app(loves, x, y)), abs(y, app(loves, y, y))))
	// Constants and variables of the same name differ.
	assert.False(t, AlphaEqual(Var{Name: "j", Type: types.Entity}, j))
}
