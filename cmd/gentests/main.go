package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/montague/internal/log"
	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/types"
)

type TestCase struct {
	Name   string
	Type   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/montague/cmd/gentests/helper"

//go:embed input.lf
var input string

//go:embed output.lf
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckReduction(t, %q, %q, input, output)
}
`

var cases = []TestCase{
	// Identity
	{"001_identity", "e", "(Lx.x)(j)", "j"},

	// Determiners
	{"002_every_man_walks", "t", "(LP.LQ.Ax.P(x) -> Q(x))(Lx.Man(x), Lx.Walks(x))", "Ax.Man(x) -> Walks(x)"},
	{"003_some_woman_talks", "t", "(LP.LQ.Ex.P(x) & Q(x))(Lx.Woman(x), Lx.Talks(x))", "Ex.Woman(x) & Talks(x)"},
	{"004_no_child_is_bad", "t", "(LP.LQ.~[Ex.P(x) & Q(x)])(Lx.Child(x), (LP.P)(Lx.Bad(x)))", "~[Ex.Child(x) & Bad(x)]"},
	{"005_the_child", "e", "(LP.ix.P(x))(Lx.Child(x))", "ix.Child(x)"},

	// Argument order of transitive verbs
	{"006_john_loves_mary", "t", "(Lx.Ly.Loves(y, x))(m, j)", "Loves(j, m)"},

	// Binders are renamed away from constants of the argument
	{"007_constant_shadowing", "<e, t>", "(Ly.Lx.R(x, y))(x)", "Lz.R(z, x)"},

	// Negated predicates
	{"008_sue_is_not_good", "t", "(LP.Lx.~P(x))(Lx.Good(x), s)", "~Good(s)"},
	{"009_everyone", "t", "(LP.Ax.P(x))(Lx.Walks(x) | Talks(x))", "Ax.Walks(x) | Talks(x)"},

	// Quantifier in object position
	{"010_object_quantifier", "t", "(LQ.Ay.Q(Lx.Loves(y, x)))(LP.Ex.Woman(x) & P(x))", "Ay.Ex.Woman(x) & Loves(y, x)"},

	// Redex in argument position
	{"011_nested_redex", "t", "Good((Lx.x)(j))", "Good(j)"},

	// A variable bound outside the redex is not captured
	{"012_capture", "<e, <e, t>>", "Ly.(Lx.Ly.R(x, y))(y)", "Ly.Lz.R(y, z)"},
}

func main() {
	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		log.Error("Error creating %s: %v", baseDir, err)
		os.Exit(1)
	}

	generated := 0
	for _, tc := range cases {
		dir := filepath.Join(baseDir, tc.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Error("Error creating %s: %v", dir, err)
			continue
		}

		typ, err := types.Parse(tc.Type)
		if err != nil {
			log.Error("Error parsing type for %s: %v", tc.Name, err)
			continue
		}

		// Normalize Input
		inTerm, err := lambda.Parse(tc.Input, typ)
		if err != nil {
			log.Error("Error parsing input for %s: %v", tc.Name, err)
			continue
		}

		// Normalize Output
		outTerm, err := lambda.Parse(tc.Output, typ)
		if err != nil {
			log.Error("Error parsing output for %s: %v", tc.Name, err)
			continue
		}

		if err := writeCase(dir, caseFiles(tc.Name, typ, inTerm, outTerm)); err != nil {
			log.Error("Error writing %s: %v", tc.Name, err)
			continue
		}
		generated++
	}

	log.Info("Generated %d tests", generated)
}

type caseFile struct {
	name    string
	content string
}

func caseFiles(name string, typ types.Type, in, out lambda.Term) []caseFile {
	return []caseFile{
		{"input.lf", lambda.ASCII(in) + "\n"},
		{"output.lf", lambda.ASCII(out) + "\n"},
		{"reduction_test.go", fmt.Sprintf(testTemplate, name, name, typ.String())},
	}
}

// writeCase stops at the first file that cannot be written.
func writeCase(dir string, files []caseFile) error {
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return err
		}
	}
	return nil
}
