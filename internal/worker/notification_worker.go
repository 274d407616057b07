package worker

import (
	"context"

	"github.com/spec-kit/bloodconnect/internal/events"
	"github.com/spec-kit/bloodconnect/internal/observability"
	"github.com/spec-kit/bloodconnect/internal/service"
)

var lifecycleEvents = []events.EventType{
	events.EventRequestCreated,
	events.EventRequestAccepted,
	events.EventRequestCompleted,
	events.EventRequestCancelled,
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartMetricsWorker counts every lifecycle event on the dispatcher.
func StartMetricsWorker(dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if dispatcher == nil || metrics == nil {
		return
	}
	for _, eventType := range lifecycleEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			metrics.RecordLifecycleEvent(string(event.Type))
			return nil
		})
	}
}
