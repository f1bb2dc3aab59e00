package lexicon

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
)

var (
	ErrNoDenotation = errors.New(`entry has no "d" field`)
	ErrNoType       = errors.New(`entry has no "t" field`)
)

//go:embed fragment.yaml
var fragment []byte

// rawEntry is one definition as written in a lexicon file. The short keys d
// and t are the usual spelling; denotation and type are accepted as well.
type rawEntry struct {
	D          string `yaml:"d"`
	T          string `yaml:"t"`
	Denotation string `yaml:"denotation"`
	Type       string `yaml:"type"`
}

func (r rawEntry) denotation() string {
	if r.D != "" {
		return r.D
	}
	return r.Denotation
}

func (r rawEntry) typ() string {
	if r.T != "" {
		return r.T
	}
	return r.Type
}

// Load reads a lexicon document. The top level maps each word to a single
// definition or a list of them:
//
//	John: {d: j, t: e}
//	bank:
//	  - {d: "Lx.Riverbank(x)", t: et}
//	  - {d: "Lx.Moneybank(x)", t: et}
//
// JSON documents are read the same way.
func Load(r io.Reader, opts ...Option) (*Lexicon, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(opts...), nil
		}
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("reading lexicon: line %d: expected a mapping of words", root.Line)
	}

	lex := New(opts...)
	for i := 0; i+1 < len(root.Content); i += 2 {
		word := root.Content[i].Value
		raws, err := decodeEntries(root.Content[i+1])
		if err != nil {
			return nil, &LexiconError{Word: word, Err: err}
		}
		for _, raw := range raws {
			term, err := raw.compile()
			if err != nil {
				return nil, &LexiconError{Word: word, Err: err}
			}
			if err := lex.Insert(word, term); err != nil {
				return nil, err
			}
		}
	}
	return lex, nil
}

// LoadFile reads a lexicon from a YAML or JSON file.
func LoadFile(path string, opts ...Option) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lex, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Fragment returns the built-in demonstration lexicon.
func Fragment(opts ...Option) *Lexicon {
	lex, err := Load(bytes.NewReader(fragment), opts...)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded fragment: %v", err))
	}
	return lex
}

func decodeEntries(n *yaml.Node) ([]rawEntry, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return nil, fmt.Errorf("line %d: no definitions", n.Line)
		}
		var raws []rawEntry
		if err := n.Decode(&raws); err != nil {
			return nil, err
		}
		return raws, nil
	case yaml.MappingNode:
		var raw rawEntry
		if err := n.Decode(&raw); err != nil {
			return nil, err
		}
		return []rawEntry{raw}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a definition with d and t fields", n.Line)
	}
}

func (r rawEntry) compile() (lambda.Term, error) {
	d, t := r.denotation(), r.typ()
	if d == "" {
		return nil, ErrNoDenotation
	}
	if t == "" {
		return nil, ErrNoType
	}
	ty, err := types.Parse(t)
	if err != nil {
		return nil, fmt.Errorf("could not parse type: %w", err)
	}
	term, err := lambda.Parse(d, ty)
	if err != nil {
		return nil, fmt.Errorf("could not parse denotation: %w", err)
	}
	return term, nil
}
