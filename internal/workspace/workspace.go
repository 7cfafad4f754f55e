package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ConfigFileName is the engine input configuration written for url-mode runs.
const ConfigFileName = "apex.config.json"

var defaultDevices = []string{"mobile", "desktop"}

type urlModeConfig struct {
	BaseURL               string       `json:"baseUrl"`
	Pages                 []pageConfig `json:"pages"`
	WarmUp                bool         `json:"warmUp"`
	Incremental           bool         `json:"incremental"`
	Parallel              int          `json:"parallel"`
	ThrottlingMethod      string       `json:"throttlingMethod"`
	CPUSlowdownMultiplier int          `json:"cpuSlowdownMultiplier"`
}

type pageConfig struct {
	Path    string   `json:"path"`
	Label   string   `json:"label"`
	Devices []string `json:"devices"`
}

// NewRunID derives a run id from the current time. It doubles as the
// workspace directory name so history rows and run directories correlate.
func NewRunID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixMilli())
}

// NewOutputDir computes a fresh per-run output directory under dataDir. The
// directory itself is created lazily by whoever writes into it first.
func NewOutputDir(dataDir string) string {
	return filepath.Join(dataDir, "runs", NewRunID())
}

// WriteURLModeConfig creates outputDir and writes the minimal single-page
// audit configuration for baseURL, returning the config file path. The
// shape is fixed: one page at "/", mobile+desktop, simulated throttling.
func WriteURLModeConfig(outputDir string, baseURL string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	cfg := urlModeConfig{
		BaseURL: baseURL,
		Pages: []pageConfig{{
			Path:    "/",
			Label:   "home",
			Devices: defaultDevices,
		}},
		WarmUp:                false,
		Incremental:           false,
		Parallel:              1,
		ThrottlingMethod:      "simulate",
		CPUSlowdownMultiplier: 4,
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	raw = append(raw, '\n')
	configPath := filepath.Join(outputDir, ConfigFileName)
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		return "", err
	}
	return configPath, nil
}
