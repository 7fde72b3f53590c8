// Package server implements the crm and dev serve commands. Both roles run
// the same binary; the role picks the config file, the migrated schema, and
// which half of the webhook protocol is mounted.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/infrastructure/config"
	"github.com/loopdesk/loopdesk/internal/infrastructure/database"
	"github.com/loopdesk/loopdesk/internal/infrastructure/pubsub"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

const (
	// peerPrefix is where the opposite deployment mounts its webhook routes.
	peerPrefix = "/webhooks/peer"

	RoleCRM = "crm"
	RoleDev = "dev"
)

func NewCRMCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crm",
		Short: "CRM deployment commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the CRM server",
		Long:  `Start the CRM-side server: agent-facing ticket routes plus the webhook endpoints the Dev platform calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(RoleCRM)
		},
	})
	return cmd
}

func NewDevCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Dev platform deployment commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the Dev platform server",
		Long:  `Start the Dev-side server: developer-facing task routes plus the webhook endpoints the CRM calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(RoleDev)
		},
	})
	return cmd
}

func run(role string) error {
	cfg, err := config.Load(role)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "role", role)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := migrate(role, database.Get()); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	pingCancel()

	log := logger.NewLogger()
	bus := pubsub.NewRedisRealtimeBus(redisClient, log)

	var engine http.Handler
	switch role {
	case RoleCRM:
		engine = buildCRMRouter(cfg, database.Get(), bus, log)
	case RoleDev:
		engine = buildDevRouter(cfg, database.Get(), bus, log)
	default:
		return fmt.Errorf("unknown role: %s", role)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			"role", role,
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func migrate(role string, gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(modelsForRole(role)...)
}
