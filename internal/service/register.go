package service

import (
	"context"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"
	"pesapoint-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type registerService struct {
	ledger    repository.LedgerRepository
	registers repository.CashRegisterRepository
	merchants repository.MerchantRepository
}

func NewRegisterService(
	ledger repository.LedgerRepository,
	registers repository.CashRegisterRepository,
	merchants repository.MerchantRepository,
) RegisterService {
	return &registerService{ledger: ledger, registers: registers, merchants: merchants}
}

// ownedRegister loads a register and checks merchant ownership. The caller of
// every register operation names the merchant from its token, never the body.
func (s *registerService) ownedRegister(ctx context.Context, merchantID, registerID int32) (*domain.CashRegister, error) {
	register, err := s.registers.GetByID(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if register.MerchantID != merchantID {
		return nil, fmt.Errorf("cash register %d: %w", registerID, domain.ErrNotFound)
	}
	return register, nil
}

func (s *registerService) Recharge(ctx context.Context, merchantID, registerID int32, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	amount = utils.RoundRechargeAmount(amount)
	if _, err := s.ownedRegister(ctx, merchantID, registerID); err != nil {
		return err
	}

	err := s.ledger.WithinTx(ctx, func(tx repository.TransferTx) error {
		merchantBalance, err := tx.MerchantBalanceForUpdate(ctx, merchantID)
		if err != nil {
			return err
		}
		if merchantBalance.LessThan(amount) {
			return fmt.Errorf("merchant %d holds %s: %w", merchantID, merchantBalance, domain.ErrInsufficientFunds)
		}
		registerBalance, err := tx.RegisterBalanceForUpdate(ctx, registerID)
		if err != nil {
			return err
		}
		if err := tx.SetMerchantBalance(ctx, merchantID, merchantBalance.Sub(amount)); err != nil {
			return err
		}
		return tx.SetRegisterBalance(ctx, registerID, registerBalance.Add(amount))
	})
	if err != nil {
		return err
	}
	logger.Info("register recharged", "merchant_id", merchantID, "register_id", registerID, "amount", amount)
	return nil
}

func (s *registerService) TransferBetween(ctx context.Context, merchantID, sourceID, destinationID int32, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	if sourceID == destinationID {
		return fmt.Errorf("source and destination are the same register: %w", domain.ErrValidation)
	}
	amount = utils.RoundRegisterTransferAmount(amount)
	if !amount.IsPositive() {
		return fmt.Errorf("amount rounds to zero: %w", domain.ErrValidation)
	}
	if _, err := s.ownedRegister(ctx, merchantID, sourceID); err != nil {
		return err
	}
	if _, err := s.ownedRegister(ctx, merchantID, destinationID); err != nil {
		return err
	}

	err := s.ledger.WithinTx(ctx, func(tx repository.TransferTx) error {
		// Lock in ascending register ID order so two opposite transfers
		// between the same pair cannot deadlock.
		firstID, secondID := sourceID, destinationID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		balances := make(map[int32]decimal.Decimal, 2)
		for _, id := range []int32{firstID, secondID} {
			balance, err := tx.RegisterBalanceForUpdate(ctx, id)
			if err != nil {
				return err
			}
			balances[id] = balance
		}
		if balances[sourceID].LessThan(amount) {
			return fmt.Errorf("cash register %d holds %s: %w", sourceID, balances[sourceID], domain.ErrInsufficientFunds)
		}
		if err := tx.SetRegisterBalance(ctx, sourceID, balances[sourceID].Sub(amount)); err != nil {
			return err
		}
		return tx.SetRegisterBalance(ctx, destinationID, balances[destinationID].Add(amount))
	})
	if err != nil {
		return err
	}
	logger.Info("register transfer",
		"merchant_id", merchantID, "source_id", sourceID, "destination_id", destinationID, "amount", amount)
	return nil
}

func (s *registerService) GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error) {
	return s.registers.GetBalance(ctx, registerID)
}

func (s *registerService) ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error) {
	return s.registers.ListByMerchant(ctx, merchantID)
}

func (s *registerService) CreateRegister(ctx context.Context, merchantID int32, name string, minBalance decimal.Decimal) (*domain.CashRegister, error) {
	if name == "" {
		return nil, fmt.Errorf("register name is required: %w", domain.ErrValidation)
	}
	if minBalance.IsNegative() {
		return nil, fmt.Errorf("minimum balance cannot be negative: %w", domain.ErrValidation)
	}
	if _, err := s.merchants.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	register := &domain.CashRegister{
		MerchantID: merchantID,
		Name:       name,
		MinBalance: minBalance,
		IsActive:   true,
	}
	if err := s.registers.Create(ctx, register); err != nil {
		return nil, err
	}
	logger.Info("register created", "merchant_id", merchantID, "register_id", register.ID)
	return register, nil
}
