package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keydesk/keydesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify keydesk configuration",
	Long: `View or modify keydesk configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  keydesk config set api.base_url http://keys.example.com:8000
  keydesk config set logging.level debug
  keydesk config set tui.theme nord

Valid keys:
  api.base_url               - Base URL of the key assignment service
  api.timeout                - Request timeout (e.g. 10s)
  notifications.auto_dismiss - How long banners stay visible (e.g. 3s)
  logging.level              - Log level: ` + strings.Join(config.ValidLogLevels(), ", ") + `
  logging.dir                - Log directory (empty logs to stderr)
  tui.theme                  - Color theme: ` + strings.Join(config.ValidThemes(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/keydesk/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("api:")
	fmt.Printf("  base_url: %s\n", cfg.API.BaseURL)
	fmt.Printf("  timeout: %s\n", cfg.API.Timeout)

	fmt.Println("notifications:")
	fmt.Printf("  auto_dismiss: %s\n", cfg.Notifications.AutoDismiss)

	fmt.Println("logging:")
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)

	fmt.Println("tui:")
	fmt.Printf("  theme: %s\n", cfg.TUI.Theme)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"api.base_url":               "string",
		"api.timeout":                "duration",
		"notifications.auto_dismiss": "duration",
		"logging.level":              "string",
		"logging.dir":                "string",
		"tui.theme":                  "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'keydesk config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		typedValue = value
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected a duration like 10s", key)
		}
		if d <= 0 {
			return fmt.Errorf("invalid value for %s: must be positive", key)
		}
		typedValue = value
	}

	// Validate the resulting config before persisting
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return err
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'keydesk config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Keydesk Configuration

# Key assignment service
api:
  # Base URL of the service
  base_url: http://127.0.0.1:8000
  # Request timeout
  timeout: 10s

# Transient notification banners
notifications:
  # How long a banner stays visible before auto-dismissing
  auto_dismiss: 3s

# Logging
logging:
  # Log level: debug, info, warn, error
  level: info
  # Directory for the log file; empty logs to stderr
  dir: ""

# Terminal UI
tui:
  # Color theme: default, nord, dracula
  theme: default
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize keydesk's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/keydesk/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: KEYDESK_* (e.g., KEYDESK_API_BASE_URL)")

	return nil
}
