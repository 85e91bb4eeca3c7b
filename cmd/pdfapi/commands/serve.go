package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sunyuchen88/pdfapi/internal/config"
	"github.com/sunyuchen88/pdfapi/internal/fetch"
	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/parse"
	"github.com/sunyuchen88/pdfapi/internal/raster"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pdfapi HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("output_dir", cfg.Raster.OutputDir).
		Msg("Starting pdfapi")

	store, err := raster.NewStore(cfg.Raster.OutputDir, cfg.Raster.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("create raster store: %w", err)
	}

	parser := parse.NewParser(logger)
	rasterizer := raster.NewRasterizer(store, logger)
	downloader := fetch.NewClient(cfg.Fetch.Timeout, cfg.Fetch.MaxBodyBytes, logger)

	router := NewRouter(logger, cfg, parser, rasterizer, downloader)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Retention sweep runs for the lifetime of the server.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := raster.NewSweeper(cfg.Raster.OutputDir, cfg.Raster.Retention, cfg.Raster.SweepInterval, logger)
	go sweeper.Run(sweepCtx)

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
	return nil
}
