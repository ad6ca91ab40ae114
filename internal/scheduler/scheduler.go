package scheduler

import (
	"time"

	"pesapoint-backend/internal/jobs"
	"pesapoint-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.RedeliverNotifications, s.jobs.RedeliverNotifications)
	if err != nil {
		logger.Error("Failed to register RedeliverNotifications job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.SweepLowBalances, s.jobs.SweepLowBalances)
	if err != nil {
		logger.Error("Failed to register SweepLowBalances job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
