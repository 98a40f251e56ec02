// Package config provides configuration loading and structs for the Kondate engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Provider   ProviderConfig   `yaml:"provider"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Search     SearchConfig     `yaml:"search"`
	Favorites  FavoritesConfig  `yaml:"favorites"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

// ProviderConfig holds settings for the remote recipe search API.
type ProviderConfig struct {
	BaseURL        string  `yaml:"base_url"`
	SearchPath     string  `yaml:"search_path"`
	AISearchPath   string  `yaml:"ai_search_path"`
	APIKey         string  `yaml:"api_key"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
	CacheSize      int     `yaml:"cache_size"`
}

// ClassifierConfig tunes the keyword vs natural-language query classifier.
type ClassifierConfig struct {
	// LengthThreshold: queries longer than this many characters are treated
	// as natural language.
	LengthThreshold int `yaml:"length_threshold"`
	// MinQueryLength: queries shorter than this are never natural language.
	MinQueryLength int `yaml:"min_query_length"`
	// Indicators are phrases whose presence marks a query as natural language.
	Indicators []string `yaml:"indicators"`
}

// SearchConfig holds result accumulation settings.
type SearchConfig struct {
	PageSize int `yaml:"page_size"`
	// PlaceholderQuery is sent to the keyword provider when the user query is
	// empty but filters are active.
	PlaceholderQuery string `yaml:"placeholder_query"`
}

// FavoritesConfig holds paths for the favorites store and its local index.
type FavoritesConfig struct {
	DatabasePath string `yaml:"database_path"`
	IndexPath    string `yaml:"index_path"`
}

// WatchConfig holds config hot-reload settings.
type WatchConfig struct {
	ConfigReload *bool `yaml:"config_reload"`
	DebounceMS   int   `yaml:"debounce_ms"`
}

// ConfigReloadOrDefault returns whether to hot-reload classifier tuning on
// config file changes; defaults to true when unset.
func (w *WatchConfig) ConfigReloadOrDefault() bool {
	if w.ConfigReload != nil {
		return *w.ConfigReload
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Favorites.DatabasePath = expandPath(cfg.Favorites.DatabasePath, configDir)
	cfg.Favorites.IndexPath = expandPath(cfg.Favorites.IndexPath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
