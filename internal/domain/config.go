package domain

import "path/filepath"

// ConfigFileName is the name of the taskdesk config file.
const ConfigFileName = "config.toml"

// LocalDirName is the per-project taskdesk directory.
const LocalDirName = ".taskdesk"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string  `toml:"-"` // Non-fatal problems found while loading
	API      APIConfig `toml:"api"`
	TUI      TUIConfig `toml:"tui"`
	Log      LogConfig `toml:"log"`
}

// APIConfig holds remote API settings from the [api] section.
type APIConfig struct {
	BaseURL        string `toml:"base_url,omitempty"`        // e.g. https://tasks.example.com/api
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"` // Per-request timeout (default 15)
}

// TUIConfig holds list settings from the [tui] section.
type TUIConfig struct {
	GroupBy           string `toml:"group_by,omitempty"`            // time | process | priority
	PageSize          int    `toml:"page_size,omitempty"`           // Tasks fetched per page
	LoadMoreThreshold int    `toml:"load_more_threshold,omitempty"` // Rows from the end that trigger the next page
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level      string `toml:"level,omitempty"`        // debug, info, warn, error
	MaxSizeMB  int    `toml:"max_size_mb,omitempty"`  // Rotate after this size
	MaxBackups int    `toml:"max_backups,omitempty"`  // Rotated files to keep
}

// NewDefaultConfig returns the configuration defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: 15,
		},
		TUI: TUIConfig{
			GroupBy:           "time",
			PageSize:          50,
			LoadMoreThreshold: 10,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LocalDir returns the per-project taskdesk directory under root.
func LocalDir(root string) string {
	return filepath.Join(root, LocalDirName)
}

// GlobalDir returns the global taskdesk directory under the config home.
func GlobalDir(configHome string) string {
	return filepath.Join(configHome, "taskdesk")
}

// SessionFileName is the persisted auth session file.
const SessionFileName = "session.json"

// RecentTagsFileName is the persisted recent-tags file.
const RecentTagsFileName = "recent_tags.json"

// LogFileName is the application log file.
const LogFileName = "taskdesk.log"
