// Package cmd implements the keydesk command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keydesk/keydesk/internal/api"
	"github.com/keydesk/keydesk/internal/config"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/session"
	"github.com/keydesk/keydesk/internal/store"
	"github.com/keydesk/keydesk/internal/tui"
	"github.com/keydesk/keydesk/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "keydesk",
	Short: "Terminal front end for RFID key issuance tracking",
	Long: `Keydesk is a terminal client for the key assignment service. Operators
sign in, issue keys by scanning staff badges, mark keys as returned, and
review the full assignment history on the admin dashboard.`,
	RunE: runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/keydesk/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/keydesk")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("KEYDESK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., KEYDESK_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Close() }()

	styles.Apply(styles.PaletteFor(cfg.TUI.Theme))

	gate := session.NewGate()
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, gate, log)

	log.Info("starting keydesk", "base_url", cfg.API.BaseURL, "theme", cfg.TUI.Theme)

	app := tui.New(cfg, gate, client, store.New(), log)
	return app.Run()
}
