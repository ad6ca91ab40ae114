package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"pesapoint-backend/internal/config"
	"pesapoint-backend/internal/jobs"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository/postgres"
	"pesapoint-backend/internal/scheduler"
	"pesapoint-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'redeliver-notifications', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PesaPoint cronjob runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailSvc := service.NewSendGridEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	smsSvc := service.NewTwilioSMSSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	pushSvc, err := service.NewFCMPushSender(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize push sender: %v", err)
	}

	dispatcher := service.NewDispatcher(
		store.NotificationRepository,
		store.MerchantRepository,
		pushSvc,
		smsSvc,
		emailSvc,
		cfg.Twilio.CountryPrefix,
		cfg.Scheduler.NotificationMaxRetries,
	)

	jobRunner := jobs.NewJobRunner(store, dispatcher, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
}

// runJobOnce runs a specific job once and exits.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "redeliver-notifications":
		jobRunner.RedeliverNotifications()
	case "sweep-low-balances":
		jobRunner.SweepLowBalances()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - redeliver-notifications\n")
		fmt.Printf("  - sweep-low-balances\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
