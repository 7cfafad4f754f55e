package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort int

	LogLevel string

	// CacheDir is where installed engine versions and the shared manifest
	// live; DataDir holds run workspaces and history.json.
	CacheDir string
	DataDir  string

	// NodeCmd is the runtime used to invoke the engine entry point.
	NodeCmd string
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "signaler-launcher")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", 8787)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SIGNALER_CACHE_DIR", "")
	v.SetDefault("SIGNALER_DATA_DIR", "")
	v.SetDefault("NODE_CMD", "node")

	return v
}

func NewConfig(v *viper.Viper) (Config, error) {
	cacheDir := strings.TrimSpace(v.GetString("SIGNALER_CACHE_DIR"))
	if cacheDir == "" {
		cacheDir = ResolveCacheDir()
	}
	dataDir := strings.TrimSpace(v.GetString("SIGNALER_DATA_DIR"))
	if dataDir == "" {
		dataDir = filepath.Join(cacheDir, "data")
	}

	cfg := Config{
		AppName: v.GetString("APP_NAME"),
		AppEnv:  v.GetString("APP_ENV"),
		AppPort: v.GetInt("APP_PORT"),

		LogLevel: v.GetString("LOG_LEVEL"),

		CacheDir: cacheDir,
		DataDir:  dataDir,

		NodeCmd: v.GetString("NODE_CMD"),
	}

	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return Config{}, fmt.Errorf("invalid APP_PORT %d", cfg.AppPort)
	}
	if strings.TrimSpace(cfg.NodeCmd) == "" {
		return Config{}, fmt.Errorf("invalid NODE_CMD: empty")
	}

	return cfg, nil
}

// ResolveCacheDir picks the per-platform cache directory for signaler:
// %LOCALAPPDATA% on Windows, otherwise $XDG_CACHE_HOME, then $HOME/.cache,
// then the temp directory.
func ResolveCacheDir() string {
	if runtime.GOOS == "windows" {
		if local := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); local != "" {
			return filepath.Join(local, "signaler")
		}
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CACHE_HOME")); xdg != "" {
		return filepath.Join(xdg, "signaler")
	}
	if home := strings.TrimSpace(os.Getenv("HOME")); home != "" {
		return filepath.Join(home, ".cache", "signaler")
	}
	return filepath.Join(os.TempDir(), "signaler")
}
