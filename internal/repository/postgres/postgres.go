package postgres

import (
	"database/sql"

	"pesapoint-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.MerchantRepository
	repository.WorkerRepository
	repository.CashRegisterRepository
	repository.LedgerRepository
	repository.SessionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		CustomerRepository:     NewCustomerRepository(db),
		MerchantRepository:     NewMerchantRepository(db),
		WorkerRepository:       NewWorkerRepository(db),
		CashRegisterRepository: NewCashRegisterRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		SessionRepository:      NewSessionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
