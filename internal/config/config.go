package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete keydesk configuration
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	TUI           TUIConfig           `mapstructure:"tui"`
}

// APIConfig controls how the client talks to the key assignment service
type APIConfig struct {
	// BaseURL is the root URL of the key assignment service
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the per-request timeout
	Timeout time.Duration `mapstructure:"timeout"`
}

// NotificationsConfig controls transient notification behavior
type NotificationsConfig struct {
	// AutoDismiss is how long a notification stays visible before dismissing
	AutoDismiss time.Duration `mapstructure:"auto_dismiss"`
}

// LoggingConfig controls diagnostic log output
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "nord", "dracula"
	Theme string `mapstructure:"theme"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 10 * time.Second,
		},
		Notifications: NotificationsConfig{
			AutoDismiss: 3 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)

	viper.SetDefault("notifications.auto_dismiss", defaults.Notifications.AutoDismiss)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keydesk")
	}
	// Fall back to ~/.config/keydesk
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keydesk"
	}
	return filepath.Join(home, ".config", "keydesk")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
