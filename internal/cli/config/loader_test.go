package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("catalog", "", "")
	flags.String("output", "", "")
	flags.String("log-level", "", "")
	return flags
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Catalog)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leapframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: parquet:///data\noutput: json\n"), 0o644))

	cfg, err := Load(path, newFlags())
	require.NoError(t, err)

	assert.Equal(t, "parquet:///data", cfg.Catalog)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leapframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o644))

	t.Setenv("LEAPFRAME_OUTPUT", "csv")

	cfg, err := Load(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output)
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("LEAPFRAME_LOG_LEVEL", "warn")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "debug"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestUnchangedFlagDoesNotOverride(t *testing.T) {
	t.Setenv("LEAPFRAME_OUTPUT", "csv")

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output)
}
