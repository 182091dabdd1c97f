package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teodordimeski/das/internal/config"
	"github.com/teodordimeski/das/internal/version"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:           "das",
		Short:         "Incremental daily bar archive synchronizer for Binance markets",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/das.yaml", "path to config file")
	rootCmd.AddCommand(syncCmd, backfillCmd, refreshCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("das failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration, then installs the
// configured logger as the process default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
		"api_url", cfg.API.BaseURL,
	)

	return cfg, logger, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
// Abandoning in-flight tasks is safe: no watermark advances for a
// symbol until its bars are committed.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	return ctx, cancel
}
