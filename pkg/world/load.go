package world

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Individuals []string          `yaml:"individuals"`
	Names       map[string]string `yaml:"names"`
	Predicates  yaml.Node         `yaml:"predicates"`
}

// Load reads a model:
//
//	individuals: [John, Mary]
//	names: {j: John, m: Mary}
//	predicates:
//	  Good: [John]
//	  Loves: [[John, Mary]]
//
// A one-place predicate may list bare ids; longer tuples are sequences.
func Load(r io.Reader) (*Model, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading world: %w", err)
	}

	m := New()
	for _, id := range doc.Individuals {
		m.AddIndividual(id)
	}
	for constant, id := range doc.Names {
		if err := m.Name(constant, id); err != nil {
			return nil, err
		}
	}

	preds := &doc.Predicates
	if preds.Kind == 0 {
		return m, nil
	}
	if preds.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("reading world: line %d: predicates must be a mapping", preds.Line)
	}
	for i := 0; i+1 < len(preds.Content); i += 2 {
		name := preds.Content[i].Value
		tuples := preds.Content[i+1]
		if tuples.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("predicate %s: line %d: expected a list of tuples", name, tuples.Line)
		}
		for _, n := range tuples.Content {
			tuple, err := decodeTuple(n)
			if err != nil {
				return nil, fmt.Errorf("predicate %s: %w", name, err)
			}
			if err := m.AddTuple(name, tuple...); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// LoadFile reads a model from a YAML file.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func decodeTuple(n *yaml.Node) (Tuple, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Tuple{n.Value}, nil
	case yaml.SequenceNode:
		var ids []string
		if err := n.Decode(&ids); err != nil {
			return nil, err
		}
		return ids, nil
	}
	return nil, fmt.Errorf("line %d: a tuple is an id or a list of ids", n.Line)
}
