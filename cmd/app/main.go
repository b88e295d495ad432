package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/EcoHunt_Go/docs"
	"github.com/osse101/EcoHunt_Go/internal/bootstrap"
	"github.com/osse101/EcoHunt_Go/internal/config"
	"github.com/osse101/EcoHunt_Go/internal/database"
	"github.com/osse101/EcoHunt_Go/internal/eventlog"
	"github.com/osse101/EcoHunt_Go/internal/handler"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/metrics"
	"github.com/osse101/EcoHunt_Go/internal/profile"
	"github.com/osse101/EcoHunt_Go/internal/scheduler"
	"github.com/osse101/EcoHunt_Go/internal/server"
	"github.com/osse101/EcoHunt_Go/internal/sse"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second

	jobEventCleanup = "eventlog-cleanup"
	jobStatsExport  = "orchestrator-stats-export"

	logMsgConnectingDB     = "Connecting to database"
	logMsgRunningMigration = "Applying database migrations"
	logMsgServerFailed     = "Server failed"
	logMsgSignalReceived   = "Shutdown signal received"
	logMsgReplayFailed     = "Failed to replay dead-lettered events"
	logMsgConfigWarning    = "Configuration warning"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ecohunt: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, warning := range cfg.Warnings() {
		logger.Warn(logMsgConfigWarning, "warning", warning)
	}

	handler.ServiceName = cfg.ServiceName
	docs.SwaggerInfo.Version = handler.CurrentVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(logMsgConnectingDB, "host", cfg.DBHost, "name", cfg.DBName)
	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		logger.Info(logMsgRunningMigration, "dir", cfg.MigrationsDir)
		if err := database.Migrate(ctx, cfg.GetDBConnString(), cfg.MigrationsDir); err != nil {
			return err
		}
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	profiles := profile.NewService(repos.Profile, cfg.ProfileCacheSize, cfg.ProfileCacheTTL)
	eventLog := eventlog.NewService(repos.EventLog)

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventLog,
		Hub:             hub,
	}); err != nil {
		return err
	}
	if _, err := publisher.ReplayDeadLetters(ctx); err != nil {
		logger.Warn(logMsgReplayFailed, "error", err)
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	engine, err := bootstrap.BuildEngine(ctx, cfg, bootstrap.EngineDependencies{
		Profiles:  profiles,
		Issuances: repos.Issuance,
		Publisher: publisher,
		Pool:      pool,
	})
	if err != nil {
		return err
	}

	jobs := scheduler.New(pool)
	jobs.Schedule(jobEventCleanup, cfg.EventCleanupInterval, eventlog.NewCleanupJob(eventLog, cfg.EventRetentionDays))
	jobs.Schedule(jobStatsExport, cfg.StatsExportInterval, metrics.NewStatsExportJob(engine.Orchestrator))
	jobs.Start()

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		MaxRequestBytes: cfg.MaxRequestBytes,
	}, server.Dependencies{
		DBPool:      dbPool,
		Submissions: engine.Submissions,
		Scorer:      engine.Impact,
		EventLog:    eventLog,
		Hub:         hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info(logMsgSignalReceived)
	case err := <-serverErr:
		if err != nil {
			logger.Error(logMsgServerFailed, "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          jobs,
		Pool:               pool,
		Hub:                hub,
		ResilientPublisher: publisher,
	})
	return nil
}
