package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pusharr/config"
	"github.com/s0up4200/pusharr/pusher"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   = zerolog.Nop()
	client   pusher.API

	// newClient builds the API client once configuration is loaded
	newClient = func(cfg *config.Config, logger zerolog.Logger) pusher.API {
		return pusher.NewClient(cfg.Pusher.Credentials(), cfg.Pusher.ClientOptions(logger)...)
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pusharr",
	Short: "A command line client for the Pusher Channels REST API",
	Long: `pusharr talks to the Pusher Channels REST API with signed requests.

It can trigger events, list occupied channels, inspect a single channel
and list the users of presence channels. Credentials come from config.yaml
or PUSHARR_PUSHER_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
}

// initializeApp loads the configuration and creates the client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)
	client = newClient(cfg, logger)

	logger.Debug().
		Str("app_id", cfg.Pusher.AppID).
		Str("host", cfg.Pusher.Host).
		Msg("Pusher client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
