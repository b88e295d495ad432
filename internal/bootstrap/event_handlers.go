package bootstrap

import (
	"fmt"

	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/eventlog"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/metrics"
	"github.com/osse101/EcoHunt_Go/internal/sse"
)

// EventHandlerDependencies holds what the event subscribers need. EventLog
// and Hub are optional.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Hub             *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector, the event logger
// and the live stream bridge to the bus
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		logger.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		logger.Info(LogMsgLiveStreamBridged)
	}

	return nil
}
