package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pusharr/pusher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		Pusher: PusherConfig{
			AppID:  "3",
			Key:    "278d425bdf160c739803",
			Secret: "7ad3773142a6692b25b8",
			Scheme: "https",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing app id",
			mutate:  func(cfg *Config) { cfg.Pusher.AppID = "" },
			wantErr: "pusher.app_id is required",
		},
		{
			name:    "missing key",
			mutate:  func(cfg *Config) { cfg.Pusher.Key = "" },
			wantErr: "pusher.key is required",
		},
		{
			name:    "missing secret",
			mutate:  func(cfg *Config) { cfg.Pusher.Secret = "" },
			wantErr: "pusher.secret",
		},
		{
			name:    "placeholder secret",
			mutate:  func(cfg *Config) { cfg.Pusher.Secret = "your-secret-here" },
			wantErr: "pusher.secret",
		},
		{
			name:    "invalid scheme",
			mutate:  func(cfg *Config) { cfg.Pusher.Scheme = "ftp" },
			wantErr: "invalid pusher.scheme: ftp",
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.Pusher.Timeout = -time.Second },
			wantErr: "pusher.timeout",
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
pusher:
  app_id: "3"
  key: 278d425bdf160c739803
  secret: 7ad3773142a6692b25b8
  host: api-eu.pusher.com
  timeout: 10s
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3", cfg.Pusher.AppID)
	assert.Equal(t, "278d425bdf160c739803", cfg.Pusher.Key)
	assert.Equal(t, "7ad3773142a6692b25b8", cfg.Pusher.Secret)
	assert.Equal(t, "api-eu.pusher.com", cfg.Pusher.Host)
	assert.Equal(t, "https", cfg.Pusher.Scheme)
	assert.Equal(t, 10*time.Second, cfg.Pusher.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
pusher:
  app_id: "1"
  key: k
  secret: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, pusher.DefaultHost, cfg.Pusher.Host)
	assert.Equal(t, pusher.DefaultScheme, cfg.Pusher.Scheme)
	assert.Equal(t, pusher.DefaultTimeout, cfg.Pusher.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
pusher:
  app_id: "1"
  key: file-key
  secret: file-secret
`)
	t.Setenv("PUSHARR_PUSHER_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Pusher.Key)
	assert.Equal(t, "env-secret", cfg.Pusher.Secret)
}

func TestLoad_MissingCredentialsFailAtLoad(t *testing.T) {
	path := writeConfig(t, `
pusher:
  app_id: "1"
  key: k
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pusher.secret")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestPusherConfig_Credentials(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, pusher.Credentials{
		AppID:  "3",
		Key:    "278d425bdf160c739803",
		Secret: "7ad3773142a6692b25b8",
	}, cfg.Pusher.Credentials())
}

func TestPusherConfig_ClientOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Pusher.Host = "api-eu.pusher.com"
	cfg.Pusher.Timeout = 5 * time.Second

	opts := cfg.Pusher.ClientOptions(zerolog.Nop())
	assert.Len(t, opts, 4)

	client := pusher.NewClient(cfg.Pusher.Credentials(), opts...)
	assert.Equal(t, "3", client.AppID())
}
