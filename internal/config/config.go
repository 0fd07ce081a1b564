package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// PublishRule controls which offer statuses may transition to Published.
const (
	PublishFromDraftOnly = "draft-only"
	PublishFromAny       = "any"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath string      `mapstructure:"database_path"`
	Offer        OfferConfig `mapstructure:"offer"`
	External     External    `mapstructure:"external"`
	Log          LogConfig   `mapstructure:"log"`
}

// OfferConfig holds offer lifecycle settings.
type OfferConfig struct {
	PublishRule string `mapstructure:"publish_rule"` // draft-only or any
}

// External holds base URLs for external job and skill sources.
type External struct {
	RemoteOKURL string `mapstructure:"remoteok_url"`
	ESCOURL     string `mapstructure:"esco_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

var AppConfig *Config

// Initialize loads or creates the configuration file under ~/.jobfinder.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".jobfinder")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	viper.SetDefault("database_path", filepath.Join(configDir, "jobfinder.db"))
	viper.SetDefault("offer.publish_rule", PublishFromDraftOnly)
	viper.SetDefault("external.remoteok_url", "https://remoteok.com/api")
	viper.SetDefault("external.esco_url", "https://ec.europa.eu/esco/api/search")
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.debug", false)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if AppConfig.DatabasePath == "" {
		AppConfig.DatabasePath = filepath.Join(configDir, "jobfinder.db")
	}
	if AppConfig.Offer.PublishRule != PublishFromDraftOnly &&
		AppConfig.Offer.PublishRule != PublishFromAny {
		return fmt.Errorf("invalid offer.publish_rule %q", AppConfig.Offer.PublishRule)
	}

	return nil
}

// createDefaultConfig creates a default config file.
func createDefaultConfig(path string) error {
	defaultConfig := `# Jobfinder Configuration

# Path to the SQLite database. Empty uses ~/.jobfinder/jobfinder.db.
database_path: ""

offer:
  # Which offers may be published: draft-only or any.
  publish_rule: draft-only

external:
  remoteok_url: https://remoteok.com/api
  esco_url: https://ec.europa.eu/esco/api/search

log:
  json: false
  debug: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value and writes the file.
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".jobfinder", "config.yaml")
}
