package jobs

import (
	"pesapoint-backend/internal/config"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository/postgres"
	"pesapoint-backend/internal/service"
)

// JobRunner coordinates the scheduled jobs.
type JobRunner struct {
	store      *postgres.Store
	dispatcher service.Dispatcher
	config     *config.Config
}

func NewJobRunner(store *postgres.Store, dispatcher service.Dispatcher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:      store,
		dispatcher: dispatcher,
		config:     cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once, for manual execution.
func (jr *JobRunner) RunAll() {
	jr.RedeliverNotifications()
	jr.SweepLowBalances()
}
