package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerSession is a worker's bounded period of custody over one register.
// At most one session per worker may have EndTime == nil; the row is written
// once at open and mutated exactly once at close.
type WorkerSession struct {
	ID             int32           `json:"id"`
	WorkerID       int32           `json:"worker_id"`
	CashRegisterID int32           `json:"cash_register_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"` // register balance snapshot at open
	StartTime      time.Time       `json:"start_time"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
}

func (s *WorkerSession) IsOpen() bool {
	return s.EndTime == nil
}

// SessionSummary aggregates the immutable transaction log over the session
// window. The totals are recomputed from the log on every read, never
// accumulated incrementally, so repeated reads agree with what was persisted.
type SessionSummary struct {
	Session         WorkerSession   `json:"session"`
	TotalSend       decimal.Decimal `json:"total_send"`
	TotalCollect    decimal.Decimal `json:"total_collect"` // net of commission
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalCorrected  decimal.Decimal `json:"total_corrected"` // sum of pre-correction amounts
	Transactions    []Transaction   `json:"transactions"`
}
