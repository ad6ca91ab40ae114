package service

import (
	"context"

	"pesapoint-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	// LoginWorker authenticates a cashier by phone and password and returns
	// a worker-role access token.
	LoginWorker(ctx context.Context, phone, password string) (string, *domain.Worker, error)
	RegisterWorker(ctx context.Context, merchantID int32, phone, name, password string) (*domain.Worker, error)
}

type TransferService interface {
	// Render moves money register -> customer (type SEND, no commission).
	Render(ctx context.Context, workerID, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error)
	// Collect moves money customer -> register (type COLLECT). The worker's
	// password is verified again at call time: taking money from a customer
	// needs the two-party confirmation, giving money only needs the token.
	Collect(ctx context.Context, workerID int32, workerPassword string, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error)
	// Correct rewrites the amount of a recorded transaction: the original
	// movement is reversed and the new one applied in a single transaction.
	// Requires an open session for the acting worker.
	Correct(ctx context.Context, workerID, transactionID int32, newAmount decimal.Decimal) (*domain.CorrectionReceipt, error)
}

type SessionService interface {
	Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error)
	Close(ctx context.Context, workerID int32) (*domain.SessionSummary, error)
	Summary(ctx context.Context, workerID int32) (*domain.SessionSummary, error)
}

type RegisterService interface {
	// Recharge funds a register from its merchant's balance.
	Recharge(ctx context.Context, merchantID, registerID int32, amount decimal.Decimal) error
	// TransferBetween moves whole FCFA units between two registers of the
	// same merchant.
	TransferBetween(ctx context.Context, merchantID, sourceID, destinationID int32, amount decimal.Decimal) error
	GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error)
	ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error)
	CreateRegister(ctx context.Context, merchantID int32, name string, minBalance decimal.Decimal) (*domain.CashRegister, error)
}

type CustomerService interface {
	// LookupByPhone resolves a customer at the point of sale, provisioning a
	// bare account with a zero balance when the phone is unknown.
	LookupByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	LookupByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error)
	// RegisterDevice records the push token the mobile app obtained, making
	// PUSH the preferred notification channel for this customer.
	RegisterDevice(ctx context.Context, customerID int32, deviceToken string) error
	GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, customerID, page, pageSize int32) ([]domain.Transaction, int32, error)
}

// PushSender delivers one push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string) error
}

// SMSSender delivers one text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// EmailService delivers one email. The subject and body are composed by the
// dispatcher before the outbox row is written, so a retry needs nothing but
// the stored row.
type EmailService interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Dispatcher is the post-commit side of a transfer. The notifying methods are
// fire-and-forget: each records an outbox row and attempts delivery on a
// detached context. Failures are logged and retried by the cron runner via
// Deliver, never surfaced to the caller of the committed transfer.
type Dispatcher interface {
	CustomerCredited(customer *domain.Customer, merchantName string, amount, newBalance decimal.Decimal, code string)
	CustomerDebited(customer *domain.Customer, merchantName string, amount, newBalance decimal.Decimal, code string)
	LowBalance(reg domain.LowBalanceRegister)
	SessionReport(worker *domain.Worker, merchantName string, summary *domain.SessionSummary)
	// Deliver sends one outbox row over its channel.
	Deliver(ctx context.Context, note *domain.Notification) error
}
