package service_test

import (
	"context"
	"testing"
	"time"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	ledger     *fakeLedger
	sessions   *MockSessionRepo
	workers    *MockWorkerRepo
	merchants  *MockMerchantRepo
	registers  *MockRegisterRepo
	dispatcher *recordingDispatcher
	svc        service.SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		ledger:     newFakeLedger(),
		sessions:   new(MockSessionRepo),
		workers:    new(MockWorkerRepo),
		merchants:  new(MockMerchantRepo),
		registers:  new(MockRegisterRepo),
		dispatcher: &recordingDispatcher{},
	}
	f.svc = service.NewSessionService(f.sessions, f.ledger, f.workers, f.merchants, f.registers, f.dispatcher)
	return f
}

func TestSessionService_Open(t *testing.T) {
	ctx := context.Background()
	worker := &domain.Worker{ID: 1, MerchantID: 1, Name: "Alice", IsActive: true}
	register := &domain.CashRegister{ID: 10, MerchantID: 1, Name: "Caisse 1"}

	t.Run("Success", func(t *testing.T) {
		f := newSessionFixture()
		opened := &domain.WorkerSession{ID: 100, WorkerID: 1, CashRegisterID: 10, InitialBalance: decimal.NewFromInt(5000), StartTime: time.Now()}
		f.workers.On("GetByID", ctx, int32(1)).Return(worker, nil)
		f.registers.On("GetByID", ctx, int32(10)).Return(register, nil)
		f.sessions.On("Open", ctx, int32(1), int32(10)).Return(opened, nil)

		session, err := f.svc.Open(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int32(100), session.ID)
		assert.True(t, session.IsOpen())
	})

	t.Run("Second Open Session Conflicts", func(t *testing.T) {
		f := newSessionFixture()
		f.workers.On("GetByID", ctx, int32(1)).Return(worker, nil)
		f.registers.On("GetByID", ctx, int32(10)).Return(register, nil)
		f.sessions.On("Open", ctx, int32(1), int32(10)).Return(nil, domain.ErrConflict)

		_, err := f.svc.Open(ctx, 1, 10)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Inactive Worker", func(t *testing.T) {
		f := newSessionFixture()
		inactive := &domain.Worker{ID: 1, MerchantID: 1, IsActive: false}
		f.workers.On("GetByID", ctx, int32(1)).Return(inactive, nil)

		_, err := f.svc.Open(ctx, 1, 10)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Register Of Another Merchant", func(t *testing.T) {
		f := newSessionFixture()
		foreign := &domain.CashRegister{ID: 11, MerchantID: 2}
		f.workers.On("GetByID", ctx, int32(1)).Return(worker, nil)
		f.registers.On("GetByID", ctx, int32(11)).Return(foreign, nil)

		_, err := f.svc.Open(ctx, 1, 11)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSessionService_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("Aggregates And Reports", func(t *testing.T) {
		f := newSessionFixture()
		start := time.Now().Add(-2 * time.Hour)
		end := time.Now()
		closed := &domain.WorkerSession{ID: 100, WorkerID: 1, CashRegisterID: 10, InitialBalance: decimal.NewFromInt(5000), StartTime: start, EndTime: &end}

		// one send, one collect, one corrected collect
		require.NoError(t, f.ledger.InsertTransaction(ctx, &domain.Transaction{
			WorkerID: 1, Type: domain.TransactionTypeSend,
			Amount: decimal.NewFromInt(2000), CreatedAt: start.Add(10 * time.Minute),
		}))
		require.NoError(t, f.ledger.InsertTransaction(ctx, &domain.Transaction{
			WorkerID: 1, Type: domain.TransactionTypeCollect,
			Amount: decimal.NewFromInt(965), Commission: decimal.NewFromInt(35),
			CreatedAt: start.Add(20 * time.Minute),
		}))
		require.NoError(t, f.ledger.InsertTransaction(ctx, &domain.Transaction{
			WorkerID: 1, Type: domain.TransactionTypeCollect,
			Amount: decimal.NewFromInt(1930), Commission: decimal.NewFromInt(70),
			InitAmount: decimal.NewFromInt(965), CreatedAt: start.Add(30 * time.Minute),
		}))
		// another worker's entry stays out of the window
		require.NoError(t, f.ledger.InsertTransaction(ctx, &domain.Transaction{
			WorkerID: 2, Type: domain.TransactionTypeSend,
			Amount: decimal.NewFromInt(9999), CreatedAt: start.Add(40 * time.Minute),
		}))

		f.sessions.On("Close", ctx, int32(1)).Return(closed, nil)
		f.workers.On("GetByID", ctx, int32(1)).Return(&domain.Worker{ID: 1, MerchantID: 1, Name: "Alice"}, nil)
		f.merchants.On("GetByID", ctx, int32(1)).Return(&domain.Merchant{ID: 1, Name: "Boutique Centrale"}, nil)

		summary, err := f.svc.Close(ctx, 1)
		require.NoError(t, err)

		assert.True(t, summary.TotalSend.Equal(decimal.NewFromInt(2000)))
		assert.True(t, summary.TotalCollect.Equal(decimal.NewFromInt(2895)))
		assert.True(t, summary.TotalCommission.Equal(decimal.NewFromInt(105)))
		assert.True(t, summary.TotalCorrected.Equal(decimal.NewFromInt(965)))
		assert.Len(t, summary.Transactions, 3)
		assert.Equal(t, 1, f.dispatcher.reports)
	})

	t.Run("No Open Session", func(t *testing.T) {
		f := newSessionFixture()
		f.sessions.On("Close", ctx, int32(1)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.Close(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 0, f.dispatcher.reports)
	})
}

func TestSessionService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	start := time.Now().Add(-time.Hour)
	open := &domain.WorkerSession{ID: 100, WorkerID: 1, CashRegisterID: 10, StartTime: start}

	require.NoError(t, f.ledger.InsertTransaction(ctx, &domain.Transaction{
		WorkerID: 1, Type: domain.TransactionTypeSend,
		Amount: decimal.NewFromInt(500), CreatedAt: start.Add(time.Minute),
	}))
	f.sessions.On("GetOpen", mock.Anything, int32(1)).Return(open, nil)

	summary, err := f.svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, summary.TotalSend.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalCollect.IsZero())
	assert.Len(t, summary.Transactions, 1)
}
