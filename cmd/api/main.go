// @title       Green API Notifier
// @version     1.0
// @description Provisions notifier devices and relays notifications to Green API contacts.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/greenapi-notifier/internal/cache/redis"
	"github.com/oggyb/greenapi-notifier/internal/config"
	"github.com/oggyb/greenapi-notifier/internal/db/gormdb"
	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/handler"
	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/media"
	"github.com/oggyb/greenapi-notifier/internal/metrics"
	gormrepo "github.com/oggyb/greenapi-notifier/internal/repository/gorm"
	devicegorm "github.com/oggyb/greenapi-notifier/internal/repository/gorm/device"
	notificationgorm "github.com/oggyb/greenapi-notifier/internal/repository/gorm/notification"
	routes "github.com/oggyb/greenapi-notifier/internal/router"
	"github.com/oggyb/greenapi-notifier/internal/scheduler"
	"github.com/oggyb/greenapi-notifier/internal/server"
	"github.com/oggyb/greenapi-notifier/internal/service"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	closeLog, err := logging.Init(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		logging.Log.Fatal().Err(err).Msg("failed to init logging")
	}
	defer closeLog()
	log := logging.Component("main")

	// Init cache.
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(rootCtx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}
	defer cache.Close()

	// Init DB.
	db, err := gormdb.New(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("failed to connect db")
	}
	defer db.Close()

	if err := gormrepo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate db")
	}

	// Remote API client and media resolver.
	client := greenapi.NewHTTPClient(cfg.GreenAPI.BaseURL, cfg.GreenAPI.Timeout)
	resolver := media.NewCacheResolver(cache, cfg.Media.PublicBaseURL, cfg.Media.TTL, cfg.Media.MaxBytes)

	notifications := notificationgorm.NewRepository(db)

	// Provider and its notifiers.
	provider := service.NewProvider(devicegorm.NewRegistry(db), service.NewCatalog(), service.Deps{
		Storage:       devicegorm.NewStorage(db),
		Client:        client,
		Resolver:      resolver,
		Notifications: notifications,
		Cache:         cache,
	})

	seed := device.Credentials{InstanceID: cfg.GreenAPI.InstanceID, APIToken: cfg.GreenAPI.APIToken}
	if err := provider.Seed(rootCtx, seed); err != nil {
		log.Fatal().Err(err).Msg("failed to seed provider credentials")
	}

	// History maintenance.
	maintenance := scheduler.NewSchedulerService(
		"history",
		service.NewHistoryMaintenance(notifications, cfg.Maintenance.PendingTimeout, cfg.Maintenance.Retention),
		cfg.Maintenance.Interval,
		cfg.Maintenance.BatchTimeout,
	)

	// HTTP dependencies & server wiring.
	deps := routes.AppDeps{
		Home:     handler.NewHomeHandler(),
		Provider: handler.NewProviderHandler(provider),
		Device:   handler.NewDeviceHandler(provider),
		Media:    handler.NewMediaHandler(resolver),

		Maintenance: handler.NewMaintenanceHandler(maintenance),
		Metrics:     metrics.Handler(),
	}

	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, cfg.API.WriteTimeout)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	if cfg.Maintenance.Enabled {
		if err := maintenance.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start maintenance")
		}
	}

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := maintenance.Close(); err != nil {
		log.Error().Err(err).Msg("maintenance could not be closed")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server graceful shutdown failed")
	} else {
		log.Info().Msg("HTTP server stopped")
	}

	log.Info().Msg("shutdown complete")
}
