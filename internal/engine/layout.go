package engine

import "path/filepath"

// CacheLayout reports the expected directory tree for versioned engine
// installs. The version-pinned directory is always the one used for
// execution; the "latest" probe is informational only.
type CacheLayout struct {
	SchemaVersion         int     `json:"schema_version"`
	CacheDir              string  `json:"cache_dir"`
	EnginesDir            string  `json:"engines_dir"`
	LatestDir             string  `json:"latest_dir"`
	VersionDir            string  `json:"version_dir"`
	SelectedDir           string  `json:"selected_dir"`
	ExpectedEngineRoot    string  `json:"expected_engine_root"`
	SelectionKind         string  `json:"selection_kind"`
	SelectionValue        string  `json:"selection_value"`
	SelectionState        string  `json:"selection_state"`
	LatestAvailable       bool    `json:"latest_available"`
	LatestManifestVersion *string `json:"latest_manifest_version"`
	LatestMatchesManifest bool    `json:"latest_matches_manifest"`
	ManifestEngineVersion string  `json:"manifest_engine_version"`
}

// ResolutionReport is the full --json answer for engine path/resolve.
type ResolutionReport struct {
	SchemaVersion  int         `json:"schema_version"`
	ManifestPath   string      `json:"manifest_path"`
	EntryPath      string      `json:"entry_path"`
	ManifestSource string      `json:"manifest_source"`
	CacheLayout    CacheLayout `json:"cache_layout"`
}

func BuildCacheLayout(info ManifestInfo) CacheLayout {
	enginesDir := filepath.Join(info.CacheDir, "engine")
	latestDir := filepath.Join(enginesDir, "latest")
	versionDir := filepath.Join(enginesDir, info.Manifest.EngineVersion)

	var latestVersion *string
	if m, err := ReadManifest(filepath.Join(latestDir, ManifestFileName)); err == nil {
		v := m.EngineVersion
		latestVersion = &v
	}
	latestMatches := latestVersion != nil && *latestVersion == info.Manifest.EngineVersion
	state := "pinned"
	if latestMatches {
		state = "latest"
	}

	return CacheLayout{
		SchemaVersion:         SupportedSchemaVersion,
		CacheDir:              info.CacheDir,
		EnginesDir:            enginesDir,
		LatestDir:             latestDir,
		VersionDir:            versionDir,
		SelectedDir:           versionDir,
		ExpectedEngineRoot:    versionDir,
		SelectionKind:         "manifest_version",
		SelectionValue:        info.Manifest.EngineVersion,
		SelectionState:        state,
		LatestAvailable:       fileExists(latestDir),
		LatestManifestVersion: latestVersion,
		LatestMatchesManifest: latestMatches,
		ManifestEngineVersion: info.Manifest.EngineVersion,
	}
}

func BuildResolutionReport(info ManifestInfo) (ResolutionReport, error) {
	entryPath, err := ResolveEntry(info)
	if err != nil {
		return ResolutionReport{}, err
	}
	source := "local"
	if info.FromCache {
		source = "cache"
	}
	return ResolutionReport{
		SchemaVersion:  SupportedSchemaVersion,
		ManifestPath:   info.ManifestPath,
		EntryPath:      entryPath,
		ManifestSource: source,
		CacheLayout:    BuildCacheLayout(info),
	}, nil
}
