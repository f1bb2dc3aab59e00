package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vic/montague/internal/config"
	"github.com/vic/montague/internal/log"
	"github.com/vic/montague/pkg/lexicon"
	"github.com/vic/montague/pkg/world"
)

const version = "montague v0.2.0"

// app carries what every command needs once flags are parsed.
type app struct {
	cfgFile string
	vcfg    *viper.Viper
	cfg     *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "montague",
		Short: "Montague - compose word meanings and evaluate sentences",
		Long: `Montague translates English sentences into typed logical formulas by
composing the meanings of their words, then evaluates the formulas in a
world model.

There is no grammar: adjacent phrases combine whenever one can apply to the
other, so nonsense sentences may get readings too.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.vcfg, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			log.SetDebug(cfg.Debug)
			if path := a.vcfg.ConfigFileUsed(); path != "" {
				log.Debug("using config file %s", path)
			}
			return nil
		},
	}

	a.vcfg = config.Init(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.montague/config.yaml)")

	rootCmd.AddCommand(
		newInterpretCmd(a),
		newTranslateCmd(a),
		newReduceCmd(a),
		newWordsCmd(a),
		newShellCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// lexicon loads the configured lexicon, or the built-in fragment.
func (a *app) lexicon() (*lexicon.Lexicon, error) {
	opts := []lexicon.Option{lexicon.FoldCase(a.cfg.FoldCase)}
	if a.cfg.Lexicon == "" {
		return lexicon.Fragment(opts...), nil
	}
	lex, err := lexicon.LoadFile(a.cfg.Lexicon, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded %d words from %s", lex.Len(), a.cfg.Lexicon)
	return lex, nil
}

// world loads the configured world model, or an empty one.
func (a *app) world() (*world.Model, error) {
	if a.cfg.World == "" {
		return world.New(), nil
	}
	m, err := world.LoadFile(a.cfg.World)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded world %s: %d individuals", a.cfg.World, len(m.Domain()))
	return m, nil
}
