package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/pusharr/pusher"
)

// Config represents the complete configuration structure
type Config struct {
	Pusher  PusherConfig  `mapstructure:"pusher"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PusherConfig holds Pusher application credentials and connection details
type PusherConfig struct {
	AppID   string        `mapstructure:"app_id"`
	Key     string        `mapstructure:"key"`
	Secret  string        `mapstructure:"secret"`
	Host    string        `mapstructure:"host"`
	Scheme  string        `mapstructure:"scheme"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Credentials returns the key pair for pusher.NewClient
func (p PusherConfig) Credentials() pusher.Credentials {
	return pusher.Credentials{
		AppID:  p.AppID,
		Key:    p.Key,
		Secret: p.Secret,
	}
}

// ClientOptions translates the connection settings into client options
func (p PusherConfig) ClientOptions(logger zerolog.Logger) []pusher.Option {
	opts := []pusher.Option{pusher.WithLogger(logger)}
	if p.Host != "" {
		opts = append(opts, pusher.WithHost(p.Host))
	}
	if p.Scheme != "" {
		opts = append(opts, pusher.WithScheme(p.Scheme))
	}
	if p.Timeout > 0 {
		opts = append(opts, pusher.WithTimeout(p.Timeout))
	}
	return opts
}
