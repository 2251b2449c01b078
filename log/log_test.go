package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRoot(t *testing.T, lvl slog.Level) *bytes.Buffer {
	t.Helper()
	prev := Root()
	t.Cleanup(func() { root.Store(prev) })

	var buf bytes.Buffer
	root.Store(NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: lvl})))
	return &buf
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"crit":  LevelCrit,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleFiltering(t *testing.T) {
	buf := captureRoot(t, LevelTrace)

	DisableModule(MachineMonitoring)
	Debug(MachineMonitoring, "hidden")
	assert.NotContains(t, buf.String(), "hidden")

	EnableModule(MachineMonitoring)
	t.Cleanup(func() { DisableModule(MachineMonitoring) })
	Debug(MachineMonitoring, "shown", "ip", 4)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "module=machine")
	assert.Contains(t, buf.String(), "ip=4")
}

func TestInfoIgnoresModuleFilter(t *testing.T) {
	buf := captureRoot(t, LevelInfo)
	DisableModule(NetworkMonitoring)
	Info(NetworkMonitoring, "round complete")
	assert.Contains(t, buf.String(), "round complete")
}

func TestEnableModulesList(t *testing.T) {
	t.Cleanup(func() {
		for _, m := range defaultKnownModules {
			DisableModule(m)
		}
	})
	EnableModules("network, storage")
	assert.True(t, IsModuleEnabled(NetworkMonitoring))
	assert.True(t, IsModuleEnabled(StorageMonitoring))
	assert.False(t, IsModuleEnabled(PuzzleMonitoring))

	EnableModules("all")
	for _, m := range defaultKnownModules {
		assert.True(t, IsModuleEnabled(m), m)
	}
}

func TestConfigureTrace(t *testing.T) {
	prev := Root()
	t.Cleanup(func() {
		root.Store(prev)
		DisableModule(MachineMonitoring)
	})

	var buf bytes.Buffer
	require.NoError(t, Configure(&buf, "info", "", false))
	Trace(MachineMonitoring, "step", "ip", 0)
	assert.Empty(t, buf.String())

	DisableModule(NetworkMonitoring)
	require.NoError(t, Configure(&buf, "info", "", true))
	Trace(MachineMonitoring, "step", "ip", 0)
	Debug(NetworkMonitoring, "round")
	assert.Contains(t, buf.String(), "msg=step")
	assert.NotContains(t, buf.String(), "round")

	assert.Error(t, Configure(&buf, "loud", "", false))
}
