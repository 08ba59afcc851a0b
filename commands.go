package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/suhaib93102/CLM-Frontend/config"
	"github.com/suhaib93102/CLM-Frontend/handler"
	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
	"github.com/suhaib93102/CLM-Frontend/view"
)

var configPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clm-frontend",
		Short:         "Server-rendered web frontend for the CLM backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	root.AddCommand(serveCmd(), checkCmd(), versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and probe the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if _, err := view.New(); err != nil {
				return fmt.Errorf("templates: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			resp := service.NewClient(&cfg.API).Health(ctx)
			if !resp.Success {
				return fmt.Errorf("backend %s: %s", cfg.API.BaseURL, resp.Error)
			}
			health := resp.Value()
			fmt.Fprintf(cmd.OutOrStdout(), "config ok\nbackend %s: %s %s\n", cfg.API.BaseURL, health.Status, health.Version)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), handler.Version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Info("configuration loaded", "backend", cfg.API.BaseURL, "timezone", cfg.Calendar.Timezone)

	views, err := view.New()
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		return err
	}

	sessions := middleware.NewSessions(&cfg.Session)
	base := handler.NewBase(service.NewClient(&cfg.API), sessions, views, cfg.Calendar.Location())

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.LoadSession(sessions))
	router.Use(middleware.CacheHeaders())
	router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window()))

	handler.Register(router, base)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "version", handler.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		slog.Error("failed to start server", "error", err)
		return err
	case <-quit:
	}
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
