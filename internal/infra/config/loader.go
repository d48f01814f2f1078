// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// Loader loads configuration from TOML files and the environment.
// Precedence: defaults < global file < local file < TASKDESK_* env.
type Loader struct {
	localDir      string // Path to the per-project .taskdesk directory
	globalConfDir string // Path to the global config directory
}

// NewLoader creates a new Loader.
func NewLoader(localDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(localDir, globalConfDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load returns the merged configuration.
func (l *Loader) Load() (*domain.Config, error) {
	// A .env file next to the local config participates in the env
	// overlay but never overrides variables already set.
	if l.localDir != "" {
		_ = godotenv.Load(filepath.Join(l.localDir, ".env"))
	}

	base := domain.NewDefaultConfig()

	global, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = mergeConfigs(base, global)
	}

	local, err := l.loadFile(filepath.Join(l.localDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	applyEnv(base)

	if base.API.BaseURL == "" {
		base.Warnings = append(base.Warnings, "api.base_url is not set (set it in config.toml or TASKDESK_API_URL)")
	}
	return base, nil
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays src on dst; set fields in src win.
func mergeConfigs(dst, src *domain.Config) *domain.Config {
	out := *dst
	if src.API.BaseURL != "" {
		out.API.BaseURL = src.API.BaseURL
	}
	if src.API.TimeoutSeconds != 0 {
		out.API.TimeoutSeconds = src.API.TimeoutSeconds
	}
	if src.TUI.GroupBy != "" {
		out.TUI.GroupBy = src.TUI.GroupBy
	}
	if src.TUI.PageSize != 0 {
		out.TUI.PageSize = src.TUI.PageSize
	}
	if src.TUI.LoadMoreThreshold != 0 {
		out.TUI.LoadMoreThreshold = src.TUI.LoadMoreThreshold
	}
	if src.Log.Level != "" {
		out.Log.Level = src.Log.Level
	}
	if src.Log.MaxSizeMB != 0 {
		out.Log.MaxSizeMB = src.Log.MaxSizeMB
	}
	if src.Log.MaxBackups != 0 {
		out.Log.MaxBackups = src.Log.MaxBackups
	}
	return &out
}

// applyEnv overlays TASKDESK_* environment variables.
func applyEnv(cfg *domain.Config) {
	if v := os.Getenv("TASKDESK_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TASKDESK_API_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("TASKDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKDESK_GROUP_BY"); v != "" {
		cfg.TUI.GroupBy = v
	}
}
