package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, args ...string) (*pflag.FlagSet, func(path string) (*Config, error)) {
	t.Helper()
	// keep a developer's own config file out of the way
	t.Setenv("HOME", t.TempDir())
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	vcfg := Init(flags)
	require.NoError(t, flags.Parse(args))
	return flags, func(path string) (*Config, error) { return Load(vcfg, path) }
}

func TestDefaults(t *testing.T) {
	_, load := setup(t)
	cfg, err := load("")
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, def, cfg)
	assert.Equal(t, "innermost", cfg.Strategy)
	assert.Len(t, cfg.CombinatorOptions(), 2)
}

func TestFlagsOverride(t *testing.T) {
	_, load := setup(t, "--lexicon", "lex.yaml", "--parallel", "--workers", "3", "--max-steps", "50", "--cache-ttl", "1m", "-d")
	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "lex.yaml", cfg.Lexicon)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, uint64(50), cfg.MaxSteps)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.Debug)
	assert.Len(t, cfg.CombinatorOptions(), 3)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("MONTAGUE_FOLD_CASE", "true")
	t.Setenv("MONTAGUE_WORLD", "model.yaml")
	_, load := setup(t)
	cfg, err := load("")
	require.NoError(t, err)
	assert.True(t, cfg.FoldCase)
	assert.Equal(t, "model.yaml", cfg.World)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: w.yaml\nascii: true\nstrategy: outermost\n"), 0o600))

	_, load := setup(t, "--world", "flag.yaml")
	cfg, err := load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ASCII)
	assert.Equal(t, "outermost", cfg.Strategy)
	assert.Equal(t, "flag.yaml", cfg.World, "flags win over the file")
}

func TestHomeConfigFile(t *testing.T) {
	_, load := setup(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".montague"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".montague", "config.yaml"), []byte("fold-case: true\n"), 0o600))

	cfg, err := load("")
	require.NoError(t, err)
	assert.True(t, cfg.FoldCase)
}

func TestInvalid(t *testing.T) {
	_, load := setup(t, "--workers", "0")
	_, err := load("")
	assert.Error(t, err)

	_, load = setup(t, "--strategy", "sideways")
	_, err = load("")
	assert.Error(t, err)

	_, load = setup(t)
	_, err = load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
