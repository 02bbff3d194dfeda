package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/pusharr/pusher"
)

// EnvPrefix prefixes environment overrides, e.g. PUSHARR_PUSHER_SECRET
const EnvPrefix = "PUSHARR"

// Load loads the configuration from file and environment.
// Without an explicit path a missing config file is fine as long as the environment
// supplies the credentials.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"pusher.app_id", "pusher.key", "pusher.secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pusharr"))
		}

		// Check /etc
		v.AddConfigPath("/etc/pusharr/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Pusher defaults
	v.SetDefault("pusher.host", pusher.DefaultHost)
	v.SetDefault("pusher.scheme", pusher.DefaultScheme)
	v.SetDefault("pusher.timeout", pusher.DefaultTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Pusher.AppID == "" {
		return fmt.Errorf("pusher.app_id is required")
	}

	if cfg.Pusher.Key == "" {
		return fmt.Errorf("pusher.key is required")
	}

	if cfg.Pusher.Secret == "" || cfg.Pusher.Secret == "your-secret-here" {
		return fmt.Errorf("pusher.secret must be set to the application secret")
	}

	if cfg.Pusher.Scheme != "http" && cfg.Pusher.Scheme != "https" {
		return fmt.Errorf("invalid pusher.scheme: %s (must be 'http' or 'https')", cfg.Pusher.Scheme)
	}

	if cfg.Pusher.Timeout < 0 {
		return fmt.Errorf("pusher.timeout must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
