package jobs

import (
	"context"
	"time"

	"pesapoint-backend/internal/logger"
)

// SweepLowBalances emails merchant admins about every register sitting under
// its configured minimum balance. The per-transfer alert covers the common
// case; the sweep catches registers drained while notification delivery was
// down.
func (jr *JobRunner) SweepLowBalances() {
	jr.runWithRecovery("SweepLowBalances", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		registers, err := jr.store.ListBelowMinimum(ctx)
		if err != nil {
			logger.Error("Failed to list low balance registers", "error", err)
			return
		}
		for _, reg := range registers {
			jr.dispatcher.LowBalance(reg)
			logger.Debug("Low balance alert queued",
				"register_id", reg.RegisterID, "merchant_id", reg.MerchantID,
				"balance", reg.Balance, "min_balance", reg.MinBalance)
		}
		if len(registers) > 0 {
			logger.Info("Low balance sweep finished", "registers", len(registers))
		}
	})
}
