package repository

import (
	"context"
	"time"

	"pesapoint-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error)
	UpdateDeviceToken(ctx context.Context, id int32, token string, isMobile bool) error
	GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error)
}

type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id int32) (*domain.Merchant, error)
	GetBalance(ctx context.Context, merchantID int32) (decimal.Decimal, error)
	ListAdmins(ctx context.Context, merchantID int32) ([]domain.MerchantAdmin, error)
}

type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id int32) (*domain.Worker, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Worker, error)
}

type CashRegisterRepository interface {
	Create(ctx context.Context, register *domain.CashRegister) error
	GetByID(ctx context.Context, id int32) (*domain.CashRegister, error)
	GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error)
	ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error)
	// ListBelowMinimum reports registers whose balance sits under their
	// configured floor, for the low-balance sweep.
	ListBelowMinimum(ctx context.Context) ([]domain.LowBalanceRegister, error)
}

// TransferTx is the unit of work for every operation that moves money.
// Balance reads take a row-level exclusive lock (SELECT ... FOR UPDATE) held
// until the enclosing transaction commits or rolls back, so two transfers
// touching the same balance serialize at the lock.
type TransferTx interface {
	CustomerBalanceForUpdate(ctx context.Context, customerID int32) (decimal.Decimal, error)
	RegisterBalanceForUpdate(ctx context.Context, registerID int32) (decimal.Decimal, error)
	MerchantBalanceForUpdate(ctx context.Context, merchantID int32) (decimal.Decimal, error)
	SetCustomerBalance(ctx context.Context, customerID int32, amount decimal.Decimal) error
	SetRegisterBalance(ctx context.Context, registerID int32, amount decimal.Decimal) error
	SetMerchantBalance(ctx context.Context, merchantID int32, amount decimal.Decimal) error
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
	TransactionForUpdate(ctx context.Context, id int32) (*domain.Transaction, error)
	// UpdateTransactionAmounts rewrites amount and commission on an existing
	// row, stashing the prior amount in init_amount. Used only by the
	// correction operation, inside the same lock scope as a fresh transfer.
	UpdateTransactionAmounts(ctx context.Context, id int32, amount, commission, initAmount decimal.Decimal) error
}

type LedgerRepository interface {
	// WithinTx runs fn inside one database transaction; any error rolls the
	// whole unit back, leaving no partial debit/credit pair behind.
	WithinTx(ctx context.Context, fn func(tx TransferTx) error) error
	GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error)
	GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error)
	ListByWorkerSince(ctx context.Context, workerID int32, since time.Time) ([]domain.Transaction, error)
	ListByCustomer(ctx context.Context, customerID int32, limit, offset int32) ([]domain.Transaction, int32, error)
}

type SessionRepository interface {
	// Open inserts the session and snapshots the register balance in one
	// transaction. A second open session for the same worker fails with
	// domain.ErrConflict, enforced by a partial unique index rather than an
	// application-level check.
	Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error)
	// Close stamps end_time on the open session and returns it;
	// domain.ErrNotFound if the worker has no open session.
	Close(ctx context.Context, workerID int32) (*domain.WorkerSession, error)
	GetOpen(ctx context.Context, workerID int32) (*domain.WorkerSession, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListPending(ctx context.Context, limit int32) ([]domain.Notification, error)
	MarkDelivered(ctx context.Context, id int32) error
	MarkFailed(ctx context.Context, id int32, maxAttempts int32) error
}
