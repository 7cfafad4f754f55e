package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveReportPath(t *testing.T) {
	outDir := t.TempDir()
	raw := `{"artifacts":[{"kind":"dir","relativePath":"pages"},{"kind":"file","relativePath":"report.html"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(outDir, RunIndexFileName), []byte(raw), 0o644))

	got, err := ResolveReportPath(outDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "report.html"), got)
}

func TestResolveReportPath_MissingArtifact(t *testing.T) {
	outDir := t.TempDir()
	raw := `{"artifacts":[{"kind":"file","relativePath":"summary.json"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(outDir, RunIndexFileName), []byte(raw), 0o644))

	_, err := ResolveReportPath(outDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "report.html not found")
}

func TestResolveReportPath_MissingIndex(t *testing.T) {
	_, err := ResolveReportPath(t.TempDir())
	require.Error(t, err)
}
