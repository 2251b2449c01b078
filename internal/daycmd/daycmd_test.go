package daycmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,0,4,0,99\n"), 0644))

	cmd := New(9, "test")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--input", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "part1: 1\npart2: 2\n", buf.String())
}

func TestDayCommandFails(t *testing.T) {
	cmd := New(5, "test")
	cmd.SetArgs([]string{"--input", filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, cmd.Execute())
}
