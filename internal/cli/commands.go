package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vic/montague/internal/shell"
	"github.com/vic/montague/pkg/eval"
	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/montague"
	"github.com/vic/montague/pkg/types"
)

// sentence accepts both `montague translate every man walks` and a single
// quoted argument.
func sentence(args []string) []string {
	return strings.Fields(strings.Join(args, " "))
}

func newInterpretCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interpret <sentence>",
		Short: "Evaluate a sentence in the world model",
		Long: `Interpret composes every reading of type t and evaluates each one in the
world model given by --world. An ambiguous sentence prints all its readings.

Example:
  montague interpret every man walks --world world.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			m, err := a.world()
			if err != nil {
				return err
			}
			res, err := montague.Interpret(sentence(args), lex, m, a.cfg.CombinatorOptions()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shell.FormatResult(res, a.cfg.ASCII))
			return nil
		},
	}
}

func newTranslateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <sentence>",
		Short: "Translate a phrase into logic",
		Long: `Translate prints every reading of the whole phrase, whatever its type.

Example:
  montague translate the child`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			cands, err := montague.Translate(sentence(args), lex, a.cfg.CombinatorOptions()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shell.FormatCandidates(cands, a.cfg.ASCII))
			return nil
		},
	}
}

func newReduceCmd(a *app) *cobra.Command {
	var (
		typ      string
		evaluate bool
	)
	cmd := &cobra.Command{
		Use:   "reduce <formula>",
		Short: "Normalize a formula",
		Long: `Reduce parses a formula, beta-reduces it to normal form and prints the
result. Statistics go to stderr.

Example:
  montague reduce "[LP.LQ.Ax.P(x) -> Q(x)](Lx.Man(x))(Lx.Walks(x))" --type t`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want types.Type
			if typ != "" {
				t, err := types.Parse(typ)
				if err != nil {
					return err
				}
				want = t
			}
			term, err := lambda.Parse(args[0], want)
			if err != nil {
				return err
			}
			strategy, err := lambda.ParseStrategy(a.cfg.Strategy)
			if err != nil {
				return err
			}
			r := lambda.NewReducer(lambda.WithStrategy(strategy), lambda.WithStepLimit(a.cfg.MaxSteps))

			start := time.Now()
			nf, err := r.Normalize(term)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			if a.cfg.ASCII {
				fmt.Fprintln(out, lambda.ASCII(nf))
			} else {
				fmt.Fprintln(out, nf)
			}
			if evaluate {
				m, err := a.world()
				if err != nil {
					return err
				}
				v, err := eval.Evaluate(nf, m)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Value: %s\n", v)
			}

			nt, err := lambda.TypeOf(nf)
			if err != nil {
				return err
			}
			stats := r.GetStats()
			seconds := elapsed.Seconds()
			errw := cmd.ErrOrStderr()
			fmt.Fprintf(errw, "\nStats:\n")
			fmt.Fprintf(errw, "Type: %s\n", nt)
			fmt.Fprintf(errw, "Strategy: %s\n", strategy)
			fmt.Fprintf(errw, "Time: %v\n", elapsed)
			fmt.Fprintf(errw, "Beta Steps: %d", stats.BetaSteps)
			if seconds > 0 {
				fmt.Fprintf(errw, " (%.2f ops/sec)", float64(stats.BetaSteps)/seconds)
			}
			fmt.Fprintf(errw, "\n")
			fmt.Fprintf(errw, "Alpha Renames: %d\n", stats.AlphaRenames)
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "expected type of the formula, e.g. t or <e, t> (default: inferred)")
	cmd.Flags().BoolVar(&evaluate, "eval", false, "evaluate the normal form in the world model")
	return cmd
}

func newWordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the words in the lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lex.Words(), " "))
			return nil
		},
	}
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := a.lexicon()
			if err != nil {
				return err
			}
			m, err := a.world()
			if err != nil {
				return err
			}
			s := montague.NewSession(lex, m,
				montague.WithCacheTTL(a.cfg.CacheTTL),
				montague.WithCombinator(a.cfg.CombinatorOptions()...))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", version)
			return shell.New(s, a.cfg.ASCII).Run(cmd.OutOrStdout())
		},
	}
}
