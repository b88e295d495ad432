package bootstrap

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/scheduler"
	"github.com/osse101/EcoHunt_Go/internal/server"
	"github.com/osse101/EcoHunt_Go/internal/sse"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

// ShutdownComponents holds everything that needs a graceful stop. Nil
// components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server, so no new submissions arrive
//  2. Scheduler and worker pool, letting in-flight jobs finish
//  3. Live stream hub
//  4. Event publisher, flushing pending retries to the dead-letter file
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	logger.Info(LogMsgShuttingDownBackground)
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
