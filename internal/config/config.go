// Package config gathers settings from flags, MONTAGUE_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vic/montague/pkg/combinator"
	"github.com/vic/montague/pkg/lambda"
)

const (
	// LexiconFlag names a lexicon file; empty means the built-in fragment
	LexiconFlag = "lexicon"
	// WorldFlag names a world model file; empty means an empty world
	WorldFlag = "world"
	// FoldCaseFlag makes word lookup case-insensitive
	FoldCaseFlag = "fold-case"
	// ParallelFlag computes split points concurrently
	ParallelFlag = "parallel"
	// WorkersFlag bounds the goroutines used in parallel mode
	WorkersFlag = "workers"
	// MaxStepsFlag bounds beta steps per normalization
	MaxStepsFlag = "max-steps"
	// StrategyFlag selects innermost or outermost reduction
	StrategyFlag = "strategy"
	// CacheTTLFlag sets how long a session keeps translations
	CacheTTLFlag = "cache-ttl"
	// ASCIIFlag prints formulas with L, A, E and i binders
	ASCIIFlag = "ascii"
	// DebugFlag enables debug logging
	DebugFlag = "debug"

	envPrefix = "MONTAGUE"
	dirName   = ".montague"
)

// Config is the resolved set of settings.
type Config struct {
	Lexicon  string        `mapstructure:"lexicon" yaml:"lexicon"`
	World    string        `mapstructure:"world" yaml:"world"`
	FoldCase bool          `mapstructure:"fold-case" yaml:"fold-case"`
	Parallel bool          `mapstructure:"parallel" yaml:"parallel"`
	Workers  int           `mapstructure:"workers" yaml:"workers"`
	MaxSteps uint64        `mapstructure:"max-steps" yaml:"max-steps"`
	Strategy string        `mapstructure:"strategy" yaml:"strategy"`
	CacheTTL time.Duration `mapstructure:"cache-ttl" yaml:"cache-ttl"`
	ASCII    bool          `mapstructure:"ascii" yaml:"ascii"`
	Debug    bool          `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		MaxSteps: lambda.DefaultStepLimit,
		Strategy: lambda.Innermost.String(),
		CacheTTL: 10 * time.Minute,
	}
}

// Init registers every setting on flags and returns a viper instance bound
// to them, with defaults and environment lookup in place.
func Init(flags *pflag.FlagSet) *viper.Viper {
	def := DefaultConfig()
	vcfg := viper.New()
	// needed so values from the environment are typed like their defaults
	vcfg.SetTypeByDefaultValue(true)

	vcfg.SetDefault(LexiconFlag, def.Lexicon)
	flags.StringP(LexiconFlag, "l", def.Lexicon, "lexicon file, YAML or JSON (default: built-in fragment)")

	vcfg.SetDefault(WorldFlag, def.World)
	flags.StringP(WorldFlag, "w", def.World, "world model file (default: empty world)")

	vcfg.SetDefault(FoldCaseFlag, def.FoldCase)
	flags.Bool(FoldCaseFlag, def.FoldCase, "look words up case-insensitively")

	vcfg.SetDefault(ParallelFlag, def.Parallel)
	flags.Bool(ParallelFlag, def.Parallel, "compose split points concurrently")

	vcfg.SetDefault(WorkersFlag, def.Workers)
	flags.Int(WorkersFlag, def.Workers, "goroutines used with --parallel")

	vcfg.SetDefault(MaxStepsFlag, def.MaxSteps)
	flags.Uint64(MaxStepsFlag, def.MaxSteps, "beta-reduction step limit, 0 for none")

	vcfg.SetDefault(StrategyFlag, def.Strategy)
	flags.String(StrategyFlag, def.Strategy, "reduction strategy: innermost or outermost")

	vcfg.SetDefault(CacheTTLFlag, def.CacheTTL)
	flags.Duration(CacheTTLFlag, def.CacheTTL, "how long the shell keeps translations cached")

	vcfg.SetDefault(ASCIIFlag, def.ASCII)
	flags.Bool(ASCIIFlag, def.ASCII, "print formulas in ASCII")

	vcfg.SetDefault(DebugFlag, def.Debug)
	flags.BoolP(DebugFlag, "d", def.Debug, "enable debug logging output")

	// this should never happen, flags are constant
	if err := vcfg.BindPFlags(flags); err != nil {
		panic(err)
	}
	vcfg.SetEnvPrefix(envPrefix)
	vcfg.AutomaticEnv()
	// hard to set env vars with hyphens
	vcfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return vcfg
}

// Load reads the config file, if any, and decodes all settings. An explicit
// path must exist; otherwise $HOME/.montague/config.yaml is used when present.
func Load(vcfg *viper.Viper, path string) (*Config, error) {
	if path != "" {
		vcfg.SetConfigFile(path)
	} else {
		vcfg.SetConfigName("config")
		vcfg.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			vcfg.AddConfigPath(filepath.Join(home, dirName))
		}
	}

	if err := vcfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// config file not found is harmless
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := vcfg.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that the types alone do not constrain.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", WorkersFlag, c.Workers)
	}
	if _, err := lambda.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%s: %w", StrategyFlag, err)
	}
	return nil
}

// CombinatorOptions translates the settings for the combinator.
func (c *Config) CombinatorOptions() []combinator.Option {
	strategy, _ := lambda.ParseStrategy(c.Strategy)
	opts := []combinator.Option{
		combinator.WithStepLimit(c.MaxSteps),
		combinator.WithStrategy(strategy),
	}
	if c.Parallel {
		opts = append(opts, combinator.WithWorkers(c.Workers))
	}
	return opts
}
