package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RunIndexFileName is written by the engine into each output directory.
const RunIndexFileName = "run.json"

type RunIndex struct {
	Artifacts []RunIndexArtifact `json:"artifacts"`
}

type RunIndexArtifact struct {
	Kind         string `json:"kind"`
	RelativePath string `json:"relativePath"`
}

// ResolveReportPath reads the engine's run index from outputDir and returns
// the absolute path of the HTML report artifact.
func ResolveReportPath(outputDir string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(outputDir, RunIndexFileName))
	if err != nil {
		return "", err
	}
	var index RunIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return "", fmt.Errorf("parse %s: %w", RunIndexFileName, err)
	}
	for _, a := range index.Artifacts {
		if a.Kind == "file" && a.RelativePath == "report.html" {
			return filepath.Join(outputDir, a.RelativePath), nil
		}
	}
	return "", fmt.Errorf("report.html not found in %s artifacts", RunIndexFileName)
}
