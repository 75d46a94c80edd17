package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	"github.com/BruksfildServices01/makeup-studio/internal/cache"
	dbpkg "github.com/BruksfildServices01/makeup-studio/internal/db"
	"github.com/BruksfildServices01/makeup-studio/internal/metrics"
	"github.com/BruksfildServices01/makeup-studio/internal/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.SeedOnStart {
		n, err := dbpkg.SeedServices(cmd.Context(), db)
		if err != nil {
			return err
		}
		logger.Info().Int("created", n).Msg("default services seeded")
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisAddr = cfg.RedisAddr
	cacheCfg.RedisPassword = cfg.RedisPassword
	cacheCfg.RedisDB = cfg.RedisDB
	serviceCache := cache.New(cacheCfg, logger)
	defer serviceCache.Close()

	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Logger:  logger,
		Cache:   serviceCache,
		Metrics: metrics.New(),
		Audit:   dispatcher,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}
