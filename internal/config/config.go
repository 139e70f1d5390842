package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config controls where the tracker stores its data and how the CLI behaves.
type Config struct {
	// StorePath is the sqlite database location. Empty means the default
	// (~/.jarvis.db).
	StorePath string `yaml:"store_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Categories are the suggested activity categories. Suggestions only;
	// any free-form category is accepted when logging.
	Categories []string `yaml:"categories"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		LogLevel:   "warn",
		Categories: []string{"Project", "Learning", "Meeting", "Hackathon", "Research"},
	}
}

// searchPaths returns the ordered list of config file locations to try.
// Later entries override earlier ones.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "jarvis", "jarvis.yaml"))
	}
	paths = append(paths, "jarvis.yaml")
	if envPath := os.Getenv("JARVIS_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}
	return paths
}

// Load reads configuration from YAML files and environment variables.
// Missing files are skipped; a present but unreadable file is an error.
func Load() (*Config, error) {
	cfg := Defaults()
	for _, path := range searchPaths() {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JARVIS_STORE"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("JARVIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// SlogLevel maps the configured level string onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
