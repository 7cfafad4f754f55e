package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func scriptEntry(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRunStatusSilent_Success(t *testing.T) {
	runner := NewRunner("sh")
	ok, code, err := runner.RunStatusSilent(scriptEntry(t, "exit 0"), nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, code)
}

func TestRunStatusSilent_NonZeroExit(t *testing.T) {
	runner := NewRunner("sh")
	ok, code, err := runner.RunStatusSilent(scriptEntry(t, "exit 3"), nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 3, code)
}

func TestRunStatus_MissingRuntime(t *testing.T) {
	runner := NewRunner("definitely-not-a-real-runtime")
	ok, _, err := runner.RunStatusSilent(scriptEntry(t, "exit 0"), nil)
	require.Error(t, err)
	require.False(t, ok)
}
