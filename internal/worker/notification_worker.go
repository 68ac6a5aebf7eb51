package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fixlane/repair-service/internal/service"
)

// StartNotificationWorker registers notification handlers for ticket events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartSummaryWarmer keeps the dashboard summary cache warm so the first
// admin request after an idle period does not pay the full fold. Stops when
// ctx is cancelled.
func StartSummaryWarmer(ctx context.Context, tickets *service.TicketService, interval time.Duration, logger *zap.Logger) {
	if tickets == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := tickets.Summary(ctx); err != nil {
					logger.Debug("summary warm failed", zap.Error(err))
				}
			}
		}
	}()
}
