package engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveEntry joins the manifest's relative entry field onto the manifest's
// own directory. The schema gate applies regardless of whether the entry
// file exists.
func ResolveEntry(info ManifestInfo) (string, error) {
	if info.Manifest.SchemaVersion != SupportedSchemaVersion {
		return "", fmt.Errorf("unsupported engine manifest schemaVersion: %d", info.Manifest.SchemaVersion)
	}
	entryPath := filepath.Join(filepath.Dir(info.ManifestPath), info.Manifest.Entry)
	if _, err := os.Stat(entryPath); err != nil {
		return "", fmt.Errorf("engine entry not found: %s", entryPath)
	}
	return entryPath, nil
}

// ResolveEntry resolves the active manifest and returns its entry path.
func (r *Resolver) ResolveEntry() (string, error) {
	info, err := r.Resolve()
	if err != nil {
		return "", err
	}
	return ResolveEntry(info)
}
