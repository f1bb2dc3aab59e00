package lexicon

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
)

func TestInsertKeepsOrder(t *testing.T) {
	lex := New()
	bank1 := lambda.MustParse("Lx.Riverbank(x)", types.Pred1)
	bank2 := lambda.MustParse("Lx.Moneybank(x)", types.Pred1)
	require.NoError(t, lex.Insert("bank", bank1))
	require.NoError(t, lex.Insert("bank", bank2))

	got, err := lex.Lookup("bank")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, lambda.Equal(bank1, got[0].Term))
	assert.True(t, lambda.Equal(bank2, got[1].Term))
	assert.Equal(t, types.Pred1, got[0].Type)
	assert.Equal(t, "bank", got[0].Word)
}

func TestInsertRejectsIllTypedTerms(t *testing.T) {
	lex := New()
	err := lex.Insert("oops", lambda.App{Fun: lambda.Const{Name: "j", Type: types.Entity}, Arg: lambda.Const{Name: "m", Type: types.Entity}})
	var le *LexiconError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "oops", le.Word)
	var te *lambda.TypeError
	assert.True(t, errors.As(err, &te))
}

func TestLookupUnknownWord(t *testing.T) {
	_, err := New().Lookup("flibbertigibbet")
	var uw *UnknownWordError
	require.True(t, errors.As(err, &uw))
	assert.Equal(t, "flibbertigibbet", uw.Word)
	assert.Contains(t, err.Error(), "flibbertigibbet")
}

func TestCaseSensitivity(t *testing.T) {
	j := lambda.Const{Name: "j", Type: types.Entity}

	lex := New()
	require.NoError(t, lex.Insert("John", j))
	_, err := lex.Lookup("john")
	assert.Error(t, err)

	folded := New(FoldCase(true))
	require.NoError(t, folded.Insert("John", j))
	got, err := folded.Lookup("JOHN")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWordsSorted(t *testing.T) {
	lex := New()
	j := lambda.Const{Name: "j", Type: types.Entity}
	for _, w := range []string{"walks", "Mary", "every", "John"} {
		require.NoError(t, lex.Insert(w, j))
	}
	assert.Equal(t, []string{"every", "John", "Mary", "walks"}, lex.Words())
	assert.Equal(t, 4, lex.Len())
}

func TestLoad(t *testing.T) {
	src := `
John: {d: j, t: e}
good: {d: "Lx.Good(x)", t: et}
bank:
  - {d: "Lx.Riverbank(x)", t: "<e, t>"}
  - {denotation: "Lx.Moneybank(x)", type: et}
`
	lex, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	john, err := lex.Lookup("John")
	require.NoError(t, err)
	assert.True(t, lambda.Equal(lambda.Const{Name: "j", Type: types.Entity}, john[0].Term))

	good, err := lex.Lookup("good")
	require.NoError(t, err)
	assert.Equal(t, types.Pred1, good[0].Type)
	assert.Equal(t, "λx.Good(x)", good[0].Term.String())

	bank, err := lex.Lookup("bank")
	require.NoError(t, err)
	assert.Len(t, bank, 2)
}

func TestLoadJSON(t *testing.T) {
	src := `{"John": {"d": "j", "t": "e"}, "good": [{"d": "Lx.Good(x)", "t": "et"}]}`
	lex, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "John"}, lex.Words())
}

func TestLoadErrorsNameTheWord(t *testing.T) {
	tests := []struct {
		name string
		src  string
		word string
		want error
	}{
		{"missing d", `John: {t: e}`, "John", ErrNoDenotation},
		{"missing t", `good: {d: "Lx.Good(x)"}`, "good", ErrNoType},
		{"bad type", `good: {d: "Lx.Good(x)", t: "<e, t"}`, "good", nil},
		{"bad formula", `good: {d: "Lx.Good(x", t: et}`, "good", nil},
		{"type mismatch", `good: {d: "Lx.Good(x)", t: e}`, "good", nil},
		{"scalar entry", `good: yes`, "good", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			var le *LexiconError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, tt.word, le.Word)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadUnsupportedType(t *testing.T) {
	_, err := Load(strings.NewReader(`runs: {d: "Le.Run(e)", t: vt}`))
	var ue *types.UnsupportedError
	assert.True(t, errors.As(err, &ue), "got %v", err)
}

func TestLoadEmpty(t *testing.T) {
	lex, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, lex.Len())

	_, err = Load(strings.NewReader("- a\n- b\n"))
	assert.Error(t, err)
}

func TestFragment(t *testing.T) {
	lex := Fragment()
	every, err := lex.Lookup("every")
	require.NoError(t, err)
	assert.Equal(t, types.Fn(types.Pred1, types.Quantifier), every[0].Type)

	the, err := lex.Lookup("the")
	require.NoError(t, err)
	assert.Equal(t, types.Fn(types.Pred1, types.Entity), the[0].Type)

	loves, err := lex.Lookup("loves")
	require.NoError(t, err)
	assert.Equal(t, types.Pred2, loves[0].Type)
}
