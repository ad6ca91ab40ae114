package api_test

import (
	"context"

	"pesapoint-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginWorker(ctx context.Context, phone, password string) (string, *domain.Worker, error) {
	args := m.Called(ctx, phone, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Worker), args.Error(2)
}
func (m *MockAuthService) RegisterWorker(ctx context.Context, merchantID int32, phone, name, password string) (*domain.Worker, error) {
	args := m.Called(ctx, merchantID, phone, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

// MockTransferService
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Render(ctx context.Context, workerID, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error) {
	args := m.Called(ctx, workerID, registerID, customerPhone, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionReceipt), args.Error(1)
}
func (m *MockTransferService) Collect(ctx context.Context, workerID int32, workerPassword string, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error) {
	args := m.Called(ctx, workerID, workerPassword, registerID, customerPhone, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionReceipt), args.Error(1)
}
func (m *MockTransferService) Correct(ctx context.Context, workerID, transactionID int32, newAmount decimal.Decimal) (*domain.CorrectionReceipt, error) {
	args := m.Called(ctx, workerID, transactionID, newAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CorrectionReceipt), args.Error(1)
}

// MockSessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error) {
	args := m.Called(ctx, workerID, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerSession), args.Error(1)
}
func (m *MockSessionService) Close(ctx context.Context, workerID int32) (*domain.SessionSummary, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSummary), args.Error(1)
}
func (m *MockSessionService) Summary(ctx context.Context, workerID int32) (*domain.SessionSummary, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSummary), args.Error(1)
}

// MockRegisterService
type MockRegisterService struct {
	mock.Mock
}

func (m *MockRegisterService) Recharge(ctx context.Context, merchantID, registerID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, merchantID, registerID, amount)
	return args.Error(0)
}
func (m *MockRegisterService) TransferBetween(ctx context.Context, merchantID, sourceID, destinationID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, merchantID, sourceID, destinationID, amount)
	return args.Error(0)
}
func (m *MockRegisterService) GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, registerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRegisterService) ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]domain.CashRegister), args.Error(1)
}
func (m *MockRegisterService) CreateRegister(ctx context.Context, merchantID int32, name string, minBalance decimal.Decimal) (*domain.CashRegister, error) {
	args := m.Called(ctx, merchantID, name, minBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

// MockCustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) LookupByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) LookupByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) RegisterDevice(ctx context.Context, customerID int32, deviceToken string) error {
	args := m.Called(ctx, customerID, deviceToken)
	return args.Error(0)
}
func (m *MockCustomerService) GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCustomerService) ListTransactions(ctx context.Context, customerID, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
