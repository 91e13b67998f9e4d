// Package main is the entry point for the estadoc-api binary.
// It serves the estate document processing pipeline over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/probatech/estadoc/pkg/config"
	"github.com/probatech/estadoc/pkg/logging"
	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/server"
	"github.com/probatech/estadoc/pkg/telemetry"
)

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "estadoc-api",
		Short: "Estate document processing API",
		Long: `HTTP API for classifying estate documents and validating them against
category-specific compliance rules.

Endpoints:
  POST /process   classify and validate one document
  GET  /taxonomy  list the category taxonomy
  GET  /health    health check
  GET  /stats     pipeline stage counters
  GET  /results   recently processed results
  GET  /metrics   Prometheus metrics

Example:
  estadoc-api --port 8080 --config estadoc.yaml`,
		RunE: runServer,
	}

	rootCmd.Flags().StringP("port", "p", defaultPort, "Port to listen on")
	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.Flags().StringP("log-level", "l", defaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().Bool("watch-config", false, "Reload the reload-safe config subset when the file changes")

	return rootCmd
}

func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
	}

	// CLI flags override config file values.
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetString("port")
		cfg.Server.ListenAddr = ":" + port
	}
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.Logging.Level = level
	}

	return cfg, configPath, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, configPath, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger, levelVar := logging.NewDynamicLogger(cfg.Logging)
	slog.SetDefault(logger)

	metrics := telemetry.NewMetrics()
	processor := pipeline.NewProcessor(nil, nil, cfg.Limits, logger, metrics)

	srv, err := server.New(cfg, processor, metrics, logger)
	if err != nil {
		return err
	}

	logger.Info("starting estadoc-api",
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Logging.Level,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sighupChan := make(chan os.Signal, 1)
	signal.Notify(sighupChan, syscall.SIGHUP)

	reload := func(path string) error {
		next, err := config.Load(path)
		if err != nil {
			return err
		}
		levelVar.Set(logging.ParseLevel(next.Logging.Level))
		srv.ApplyConfig(next)
		return nil
	}

	watch, _ := cmd.Flags().GetBool("watch-config")
	if watch && configPath != "" {
		watcher, err := config.NewWatcher(configPath, reload, logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start config watcher: %w", err)
		}
		defer func() { _ = watcher.Stop() }()
	}

	go func() {
		for {
			select {
			case sig := <-sigChan:
				logger.Info("received shutdown signal", "signal", sig.String())
				cancel()
				return
			case <-sighupChan:
				if configPath == "" {
					logger.Warn("SIGHUP received but no config file is in use")
					continue
				}
				if err := reload(configPath); err != nil {
					logger.Error("config reload failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := srv.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
