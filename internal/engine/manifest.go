package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ManifestFileName is the descriptor each engine install ships with.
	ManifestFileName = "engine.manifest.json"

	// SupportedSchemaVersion is the only manifest schema this launcher
	// understands.
	SupportedSchemaVersion = 1
)

var ErrManifestNotFound = errors.New("engine.manifest.json not found next to launcher")

// Manifest describes one engine release. Field names follow the on-disk
// JSON written by the engine installer.
type Manifest struct {
	SchemaVersion        int    `json:"schemaVersion"`
	EngineVersion        string `json:"engineVersion"`
	MinNode              string `json:"minNode"`
	Entry                string `json:"entry"`
	DefaultOutputDirName string `json:"defaultOutputDirName"`
}

// ManifestInfo is the result of a manifest search: the parsed manifest, where
// it was found, and whether it came from the shared cache or a location
// bundled next to the launcher binary.
type ManifestInfo struct {
	Manifest     Manifest
	ManifestPath string
	FromCache    bool
	CacheDir     string
}

// Resolver locates the active engine manifest. Resolution re-reads disk on
// every call so a freshly installed engine is picked up immediately.
type Resolver struct {
	CacheDir string

	// ExeDir resolves the directory holding the running launcher binary.
	// Left nil it defaults to the real executable's directory.
	ExeDir func() (string, error)
}

func NewResolver(cacheDir string) *Resolver {
	return &Resolver{CacheDir: cacheDir}
}

// Resolve searches, in order: the shared cache, next to the launcher
// executable, one directory above it. A missing file falls through to the
// next candidate; a malformed file is a hard error.
func (r *Resolver) Resolve() (ManifestInfo, error) {
	cached := filepath.Join(r.CacheDir, "engine", ManifestFileName)
	if fileExists(cached) {
		m, err := ReadManifest(cached)
		if err != nil {
			return ManifestInfo{}, err
		}
		return ManifestInfo{Manifest: m, ManifestPath: cached, FromCache: true, CacheDir: r.CacheDir}, nil
	}

	exeDir, err := r.exeDir()
	if err != nil {
		return ManifestInfo{}, fmt.Errorf("could not resolve launcher directory: %w", err)
	}

	local := filepath.Join(exeDir, ManifestFileName)
	if fileExists(local) {
		m, err := ReadManifest(local)
		if err != nil {
			return ManifestInfo{}, err
		}
		return ManifestInfo{Manifest: m, ManifestPath: local, FromCache: false, CacheDir: r.CacheDir}, nil
	}

	parent := filepath.Join(filepath.Dir(exeDir), ManifestFileName)
	if fileExists(parent) {
		m, err := ReadManifest(parent)
		if err != nil {
			return ManifestInfo{}, err
		}
		return ManifestInfo{Manifest: m, ManifestPath: parent, FromCache: false, CacheDir: r.CacheDir}, nil
	}

	return ManifestInfo{}, fmt.Errorf("%w (searched %s)", ErrManifestNotFound, local)
}

func (r *Resolver) exeDir() (string, error) {
	if r.ExeDir != nil {
		return r.ExeDir()
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func ReadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
