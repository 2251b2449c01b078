package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[log]
level = "debug"
modules = "machine,network"

[machine]
trace = true
step_limit = 5000

[network]
nic_count = 10
idle_rounds = 2

[storage]
path = "/tmp/snapshots"

[inputs]
day09 = "boost.txt"
`
	path := filepath.Join(dir, "intcode.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "machine,network", cfg.Log.Modules)
	assert.True(t, cfg.Machine.Trace)
	assert.Equal(t, uint64(5000), cfg.Machine.StepLimit)
	assert.Equal(t, 10, cfg.Network.NICCount)
	assert.Equal(t, 2, cfg.Network.IdleRounds)
	// untouched keys keep their defaults
	assert.Equal(t, 100000, cfg.Network.MaxRounds)
	assert.Equal(t, int64(255), cfg.Network.SinkAddress)
	assert.Equal(t, "/tmp/snapshots", cfg.Storage.Path)
	assert.Equal(t, "boost.txt", cfg.Input(9))
	assert.Equal(t, "inputs/day02.txt", cfg.Input(2))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Network, cfg.Network)
	assert.Empty(t, cfg.Path)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INTCODE_LOG_LEVEL", "trace")
	t.Setenv("INTCODE_STORE", "/var/intcode")
	t.Setenv("INTCODE_MAX_ROUNDS", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Log.Level)
	assert.Equal(t, "/var/intcode", cfg.Storage.Path)
	assert.Equal(t, 42, cfg.Network.MaxRounds)
}

func TestEnvUnsetKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.Machine.StepLimit = 7
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, uint64(7), cfg.Machine.StepLimit)
	assert.Equal(t, "info", cfg.Log.Level)

	t.Setenv("INTCODE_STEP_LIMIT", "250")
	t.Setenv("INTCODE_TRACE", "true")
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, uint64(250), cfg.Machine.StepLimit)
	assert.True(t, cfg.Machine.Trace)
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("INTCODE_STEP_LIMIT", "-1")
	t.Setenv("INTCODE_MAX_ROUNDS", "lots")
	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "INTCODE_STEP_LIMIT")
	assert.ErrorContains(t, err, "INTCODE_MAX_ROUNDS")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[network\nnic_count = 1"), 0644))
	_, err = Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[network]\nnic_count = 0\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "nic_count")
}
