package jobs

import (
	"context"
	"time"

	"pesapoint-backend/internal/logger"
)

// RedeliverNotifications retries outbox rows whose first delivery attempt
// failed. Rows that exhaust their attempt budget are marked FAILED by the
// repository and never picked up again.
func (jr *JobRunner) RedeliverNotifications() {
	jr.runWithRecovery("RedeliverNotifications", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		pending, err := jr.store.ListPending(ctx, jr.config.Scheduler.NotificationBatchSize)
		if err != nil {
			logger.Error("Failed to list pending notifications", "error", err)
			return
		}
		if len(pending) == 0 {
			return
		}

		delivered, failed := 0, 0
		for i := range pending {
			note := &pending[i]
			if err := jr.dispatcher.Deliver(ctx, note); err != nil {
				logger.Warn("Notification redelivery failed",
					"notification_id", note.ID, "channel", note.Channel,
					"attempts", note.Attempts, "error", err)
				if err := jr.store.MarkFailed(ctx, note.ID, jr.config.Scheduler.NotificationMaxRetries); err != nil {
					logger.Error("Failed to record delivery failure", "notification_id", note.ID, "error", err)
				}
				failed++
				continue
			}
			if err := jr.store.MarkDelivered(ctx, note.ID); err != nil {
				logger.Error("Failed to mark notification delivered", "notification_id", note.ID, "error", err)
			}
			delivered++
		}
		logger.Info("Notification redelivery finished", "delivered", delivered, "failed", failed)
	})
}
