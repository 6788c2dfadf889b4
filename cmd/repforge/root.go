package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/repforge/repforge/internal/config"
)

var (
	configPath string
	debugFlag  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "repforge",
	Short: "RepForge - AI training program generation",
	Long: `RepForge generates individualized strength training programs from a
client intake request, using a staged model pipeline over the exercise
catalog: profile analysis, program architecture, exercise selection, and
plan validation.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig runs before every command, loading configuration and wiring
// the default logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if debugFlag {
		cfg.Core.Debug = true
		cfg.Logging.Level = "debug"
	}
	slog.SetDefault(newLogger(cfg.Logging))
	return nil
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "repforge.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(programCmd)
	rootCmd.AddCommand(versionCmd)
}
