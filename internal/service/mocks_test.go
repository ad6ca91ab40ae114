package service_test

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error) {
	args := m.Called(ctx, qrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) UpdateDeviceToken(ctx context.Context, id int32, token string, isMobile bool) error {
	args := m.Called(ctx, id, token, isMobile)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockMerchantRepo
type MockMerchantRepo struct {
	mock.Mock
}

func (m *MockMerchantRepo) Create(ctx context.Context, merchant *domain.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}
func (m *MockMerchantRepo) GetByID(ctx context.Context, id int32) (*domain.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Merchant), args.Error(1)
}
func (m *MockMerchantRepo) GetBalance(ctx context.Context, merchantID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockMerchantRepo) ListAdmins(ctx context.Context, merchantID int32) ([]domain.MerchantAdmin, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]domain.MerchantAdmin), args.Error(1)
}

// MockWorkerRepo
type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}
func (m *MockWorkerRepo) GetByID(ctx context.Context, id int32) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}
func (m *MockWorkerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Worker, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

// MockRegisterRepo
type MockRegisterRepo struct {
	mock.Mock
}

func (m *MockRegisterRepo) Create(ctx context.Context, register *domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}
func (m *MockRegisterRepo) GetByID(ctx context.Context, id int32) (*domain.CashRegister, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}
func (m *MockRegisterRepo) GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, registerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRegisterRepo) ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]domain.CashRegister), args.Error(1)
}
func (m *MockRegisterRepo) ListBelowMinimum(ctx context.Context) ([]domain.LowBalanceRegister, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LowBalanceRegister), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error) {
	args := m.Called(ctx, workerID, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerSession), args.Error(1)
}
func (m *MockSessionRepo) Close(ctx context.Context, workerID int32) (*domain.WorkerSession, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerSession), args.Error(1)
}
func (m *MockSessionRepo) GetOpen(ctx context.Context, workerID int32) (*domain.WorkerSession, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerSession), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListPending(ctx context.Context, limit int32) ([]domain.Notification, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkDelivered(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkFailed(ctx context.Context, id int32, maxAttempts int32) error {
	args := m.Called(ctx, id, maxAttempts)
	return args.Error(0)
}

// recordingDispatcher counts post-commit notifications without delivering
// anything.
type recordingDispatcher struct {
	mu         sync.Mutex
	credited   int
	debited    int
	lowBalance int
	reports    int
}

func (d *recordingDispatcher) CustomerCredited(_ *domain.Customer, _ string, _, _ decimal.Decimal, _ string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.credited++
}
func (d *recordingDispatcher) CustomerDebited(_ *domain.Customer, _ string, _, _ decimal.Decimal, _ string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.debited++
}
func (d *recordingDispatcher) LowBalance(_ domain.LowBalanceRegister) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lowBalance++
}
func (d *recordingDispatcher) SessionReport(_ *domain.Worker, _ string, _ *domain.SessionSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reports++
}
func (d *recordingDispatcher) Deliver(_ context.Context, _ *domain.Notification) error {
	return nil
}

// fakeLedger is an in-memory LedgerRepository. WithinTx snapshots all state
// before running fn and restores it on error, mirroring a rollback.
type fakeLedger struct {
	customers    map[int32]decimal.Decimal
	registers    map[int32]decimal.Decimal
	merchants    map[int32]decimal.Decimal
	transactions map[int32]*domain.Transaction
	order        []int32
	nextID       int32
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		customers:    map[int32]decimal.Decimal{},
		registers:    map[int32]decimal.Decimal{},
		merchants:    map[int32]decimal.Decimal{},
		transactions: map[int32]*domain.Transaction{},
		nextID:       1,
	}
}

func (f *fakeLedger) WithinTx(_ context.Context, fn func(tx repository.TransferTx) error) error {
	snapC := maps.Clone(f.customers)
	snapR := maps.Clone(f.registers)
	snapM := maps.Clone(f.merchants)
	snapT := make(map[int32]*domain.Transaction, len(f.transactions))
	for id, t := range f.transactions {
		copied := *t
		snapT[id] = &copied
	}
	snapOrder := append([]int32(nil), f.order...)
	snapNext := f.nextID

	if err := fn(f); err != nil {
		f.customers, f.registers, f.merchants = snapC, snapR, snapM
		f.transactions, f.order, f.nextID = snapT, snapOrder, snapNext
		return err
	}
	return nil
}

func (f *fakeLedger) balance(m map[int32]decimal.Decimal, id int32, kind string) (decimal.Decimal, error) {
	b, ok := m[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s balance %d: %w", kind, id, domain.ErrNotFound)
	}
	return b, nil
}

func (f *fakeLedger) CustomerBalanceForUpdate(_ context.Context, id int32) (decimal.Decimal, error) {
	return f.balance(f.customers, id, "customer")
}
func (f *fakeLedger) RegisterBalanceForUpdate(_ context.Context, id int32) (decimal.Decimal, error) {
	return f.balance(f.registers, id, "register")
}
func (f *fakeLedger) MerchantBalanceForUpdate(_ context.Context, id int32) (decimal.Decimal, error) {
	return f.balance(f.merchants, id, "merchant")
}
func (f *fakeLedger) SetCustomerBalance(_ context.Context, id int32, amount decimal.Decimal) error {
	f.customers[id] = amount
	return nil
}
func (f *fakeLedger) SetRegisterBalance(_ context.Context, id int32, amount decimal.Decimal) error {
	f.registers[id] = amount
	return nil
}
func (f *fakeLedger) SetMerchantBalance(_ context.Context, id int32, amount decimal.Decimal) error {
	f.merchants[id] = amount
	return nil
}
func (f *fakeLedger) InsertTransaction(_ context.Context, t *domain.Transaction) error {
	t.ID = f.nextID
	f.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	stored := *t
	f.transactions[t.ID] = &stored
	f.order = append(f.order, t.ID)
	return nil
}
func (f *fakeLedger) TransactionForUpdate(_ context.Context, id int32) (*domain.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %d: %w", id, domain.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}
func (f *fakeLedger) UpdateTransactionAmounts(_ context.Context, id int32, amount, commission, initAmount decimal.Decimal) error {
	t, ok := f.transactions[id]
	if !ok {
		return fmt.Errorf("transaction %d: %w", id, domain.ErrNotFound)
	}
	t.Amount = amount
	t.Commission = commission
	t.InitAmount = initAmount
	return nil
}
func (f *fakeLedger) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	return f.TransactionForUpdate(ctx, id)
}
func (f *fakeLedger) GetTransactionByCode(_ context.Context, code string) (*domain.Transaction, error) {
	for _, id := range f.order {
		if f.transactions[id].Code == code {
			copied := *f.transactions[id]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", code, domain.ErrNotFound)
}
func (f *fakeLedger) ListByWorkerSince(_ context.Context, workerID int32, since time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, id := range f.order {
		t := f.transactions[id]
		if t.WorkerID == workerID && !t.CreatedAt.Before(since) {
			out = append(out, *t)
		}
	}
	return out, nil
}
func (f *fakeLedger) ListByCustomer(_ context.Context, customerID int32, limit, offset int32) ([]domain.Transaction, int32, error) {
	var all []domain.Transaction
	for _, id := range f.order {
		if f.transactions[id].CustomerID == customerID {
			all = append(all, *f.transactions[id])
		}
	}
	total := int32(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
