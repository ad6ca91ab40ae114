package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pesapoint-backend/internal/api"
	"pesapoint-backend/internal/config"
	"pesapoint-backend/internal/jobs"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository/postgres"
	"pesapoint-backend/internal/scheduler"
	"pesapoint-backend/internal/security"
	"pesapoint-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PesaPoint backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Bootstrap(db); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

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

	authSvc := service.NewAuthService(store.WorkerRepository, store.MerchantRepository, tokenManager)
	transferSvc := service.NewTransferService(
		store.LedgerRepository,
		store.CustomerRepository,
		store.MerchantRepository,
		store.WorkerRepository,
		store.CashRegisterRepository,
		store.SessionRepository,
		dispatcher,
		cfg.CommissionRate(),
	)
	sessionSvc := service.NewSessionService(
		store.SessionRepository,
		store.LedgerRepository,
		store.WorkerRepository,
		store.MerchantRepository,
		store.CashRegisterRepository,
		dispatcher,
	)
	registerSvc := service.NewRegisterService(store.LedgerRepository, store.CashRegisterRepository, store.MerchantRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.LedgerRepository)

	jobRunner := jobs.NewJobRunner(store, dispatcher, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := api.NewServer(cfg.GetServerAddress(), tokenManager, api.Services{
		Auth:      authSvc,
		Transfers: transferSvc,
		Sessions:  sessionSvc,
		Registers: registerSvc,
		Customers: customerSvc,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("HTTP server error: %v", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}
}
