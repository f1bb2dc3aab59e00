// Package lexicon maps words to their candidate meanings.
package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
)

// Entry is one candidate meaning of a word.
type Entry struct {
	Word string
	Term lambda.Term
	Type types.Type
}

// UnknownWordError is returned when a word has no entry. Position is the
// token index when the lookup happened inside a sentence, or -1.
type UnknownWordError struct {
	Word     string
	Position int
}

func (e *UnknownWordError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("unknown word %q", e.Word)
	}
	return fmt.Sprintf("unknown word %q at position %d", e.Word, e.Position)
}

// LexiconError reports an entry that could not be defined.
type LexiconError struct {
	Word string
	Err  error
}

func (e *LexiconError) Error() string {
	return fmt.Sprintf("lexicon entry for %q: %v", e.Word, e.Err)
}

func (e *LexiconError) Unwrap() error { return e.Err }

// Lexicon holds the candidates of every word, in insertion order. It is
// filled once and only read afterwards, so concurrent lookups are safe.
type Lexicon struct {
	entries  map[string][]Entry
	foldCase bool
}

type Option func(*Lexicon)

// FoldCase makes inserts and lookups case-insensitive.
func FoldCase(on bool) Option {
	return func(l *Lexicon) { l.foldCase = on }
}

func New(opts ...Option) *Lexicon {
	l := &Lexicon{entries: make(map[string][]Entry)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexicon) key(word string) string {
	if l.foldCase {
		return strings.ToLower(word)
	}
	return word
}

// Insert adds term as a further candidate for word. The term must be
// well-typed; its type is recorded with the entry.
func (l *Lexicon) Insert(word string, term lambda.Term) error {
	if word == "" {
		return &LexiconError{Word: word, Err: fmt.Errorf("empty word")}
	}
	ty, err := lambda.TypeOf(term)
	if err != nil {
		return &LexiconError{Word: word, Err: err}
	}
	k := l.key(word)
	l.entries[k] = append(l.entries[k], Entry{Word: word, Term: term, Type: ty})
	return nil
}

// Lookup returns the candidates of word in insertion order.
func (l *Lexicon) Lookup(word string) ([]Entry, error) {
	found := l.entries[l.key(word)]
	if len(found) == 0 {
		return nil, &UnknownWordError{Word: word, Position: -1}
	}
	out := make([]Entry, len(found))
	copy(out, found)
	return out, nil
}

// Words lists the defined words, sorted case-insensitively.
func (l *Lexicon) Words() []string {
	words := make([]string, 0, len(l.entries))
	for w := range l.entries {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		a, b := strings.ToLower(words[i]), strings.ToLower(words[j])
		if a == b {
			return words[i] < words[j]
		}
		return a < b
	})
	return words
}

// Len is the number of distinct words.
func (l *Lexicon) Len() int { return len(l.entries) }
