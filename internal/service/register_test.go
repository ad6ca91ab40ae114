package service_test

import (
	"context"
	"testing"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registerFixture struct {
	ledger    *fakeLedger
	registers *MockRegisterRepo
	merchants *MockMerchantRepo
	svc       service.RegisterService
}

func newRegisterFixture() *registerFixture {
	f := &registerFixture{
		ledger:    newFakeLedger(),
		registers: new(MockRegisterRepo),
		merchants: new(MockMerchantRepo),
	}
	f.svc = service.NewRegisterService(f.ledger, f.registers, f.merchants)
	return f
}

func TestRegisterService_Recharge(t *testing.T) {
	ctx := context.Background()
	register := &domain.CashRegister{ID: 10, MerchantID: 1, Name: "Caisse 1"}

	t.Run("Success With Rounding", func(t *testing.T) {
		f := newRegisterFixture()
		f.ledger.merchants[1] = decimal.NewFromInt(10000)
		f.ledger.registers[10] = decimal.NewFromInt(500)
		f.registers.On("GetByID", ctx, int32(10)).Return(register, nil)

		// recharge amounts keep two decimals
		err := f.svc.Recharge(ctx, 1, 10, decimal.RequireFromString("1000.456"))
		require.NoError(t, err)

		assert.True(t, f.ledger.merchants[1].Equal(decimal.RequireFromString("8999.54")))
		assert.True(t, f.ledger.registers[10].Equal(decimal.RequireFromString("1500.46")))
	})

	t.Run("Insufficient Merchant Funds", func(t *testing.T) {
		f := newRegisterFixture()
		f.ledger.merchants[1] = decimal.NewFromInt(100)
		f.ledger.registers[10] = decimal.NewFromInt(500)
		f.registers.On("GetByID", ctx, int32(10)).Return(register, nil)

		err := f.svc.Recharge(ctx, 1, 10, decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.ledger.merchants[1].Equal(decimal.NewFromInt(100)))
		assert.True(t, f.ledger.registers[10].Equal(decimal.NewFromInt(500)))
	})

	t.Run("Another Merchants Register", func(t *testing.T) {
		f := newRegisterFixture()
		f.registers.On("GetByID", ctx, int32(10)).Return(register, nil)

		err := f.svc.Recharge(ctx, 2, 10, decimal.NewFromInt(1000))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegisterService_TransferBetween(t *testing.T) {
	ctx := context.Background()
	source := &domain.CashRegister{ID: 10, MerchantID: 1, Name: "Caisse 1"}
	destination := &domain.CashRegister{ID: 11, MerchantID: 1, Name: "Caisse 2"}

	t.Run("Success Rounds To Whole Units", func(t *testing.T) {
		f := newRegisterFixture()
		f.ledger.registers[10] = decimal.NewFromInt(5000)
		f.ledger.registers[11] = decimal.NewFromInt(200)
		f.registers.On("GetByID", ctx, int32(10)).Return(source, nil)
		f.registers.On("GetByID", ctx, int32(11)).Return(destination, nil)

		err := f.svc.TransferBetween(ctx, 1, 10, 11, decimal.RequireFromString("999.60"))
		require.NoError(t, err)

		assert.True(t, f.ledger.registers[10].Equal(decimal.NewFromInt(4000)))
		assert.True(t, f.ledger.registers[11].Equal(decimal.NewFromInt(1200)))
	})

	t.Run("Same Register", func(t *testing.T) {
		f := newRegisterFixture()
		err := f.svc.TransferBetween(ctx, 1, 10, 10, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Insufficient Source Funds", func(t *testing.T) {
		f := newRegisterFixture()
		f.ledger.registers[10] = decimal.NewFromInt(50)
		f.ledger.registers[11] = decimal.NewFromInt(200)
		f.registers.On("GetByID", ctx, int32(10)).Return(source, nil)
		f.registers.On("GetByID", ctx, int32(11)).Return(destination, nil)

		err := f.svc.TransferBetween(ctx, 1, 10, 11, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, f.ledger.registers[10].Equal(decimal.NewFromInt(50)))
		assert.True(t, f.ledger.registers[11].Equal(decimal.NewFromInt(200)))
	})
}

func TestRegisterService_CreateRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newRegisterFixture()
		f.merchants.On("GetByID", ctx, int32(1)).Return(&domain.Merchant{ID: 1}, nil)
		f.registers.On("Create", ctx, mock.AnythingOfType("*domain.CashRegister")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.CashRegister).ID = 12
		}).Return(nil)

		register, err := f.svc.CreateRegister(ctx, 1, "Caisse 3", decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.Equal(t, int32(12), register.ID)
		assert.True(t, register.IsActive)
	})

	t.Run("Missing Name", func(t *testing.T) {
		f := newRegisterFixture()
		_, err := f.svc.CreateRegister(ctx, 1, "", decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
