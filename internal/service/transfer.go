package service

import (
	"context"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"
	"pesapoint-backend/internal/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type transferService struct {
	ledger     repository.LedgerRepository
	customers  repository.CustomerRepository
	merchants  repository.MerchantRepository
	workers    repository.WorkerRepository
	registers  repository.CashRegisterRepository
	sessions   repository.SessionRepository
	dispatcher Dispatcher
	rate       decimal.Decimal
}

func NewTransferService(
	ledger repository.LedgerRepository,
	customers repository.CustomerRepository,
	merchants repository.MerchantRepository,
	workers repository.WorkerRepository,
	registers repository.CashRegisterRepository,
	sessions repository.SessionRepository,
	dispatcher Dispatcher,
	commissionRate decimal.Decimal,
) TransferService {
	return &transferService{
		ledger:     ledger,
		customers:  customers,
		merchants:  merchants,
		workers:    workers,
		registers:  registers,
		sessions:   sessions,
		dispatcher: dispatcher,
		rate:       commissionRate,
	}
}

// resolveParties loads and cross-checks everyone involved in a transfer. The
// worker must have an open session on the named register; the merchant side
// of the movement is the register's owner, never caller input.
func (s *transferService) resolveParties(ctx context.Context, workerID, registerID int32, customerPhone string) (*domain.Customer, *domain.Merchant, error) {
	session, err := s.sessions.GetOpen(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}
	if session.CashRegisterID != registerID {
		return nil, nil, fmt.Errorf("session is open on another register: %w", domain.ErrValidation)
	}
	register, err := s.registers.GetByID(ctx, registerID)
	if err != nil {
		return nil, nil, err
	}
	merchant, err := s.merchants.GetByID(ctx, register.MerchantID)
	if err != nil {
		return nil, nil, err
	}
	customer, err := s.customers.GetByPhone(ctx, customerPhone)
	if err != nil {
		return nil, nil, err
	}
	return customer, merchant, nil
}

func (s *transferService) Render(ctx context.Context, workerID, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	customer, merchant, err := s.resolveParties(ctx, workerID, registerID, customerPhone)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateTransactionCode(domain.TransactionTypeSend)
	if err != nil {
		return nil, err
	}

	var receipt *domain.TransactionReceipt
	err = s.ledger.WithinTx(ctx, func(tx repository.TransferTx) error {
		registerBalance, err := tx.RegisterBalanceForUpdate(ctx, registerID)
		if err != nil {
			return err
		}
		if registerBalance.LessThan(amount) {
			return fmt.Errorf("cash register %d holds %s: %w", registerID, registerBalance, domain.ErrInsufficientFunds)
		}
		customerBalance, err := tx.CustomerBalanceForUpdate(ctx, customer.ID)
		if err != nil {
			return err
		}

		newRegister := registerBalance.Sub(amount)
		newCustomer := customerBalance.Add(amount)
		if err := tx.SetRegisterBalance(ctx, registerID, newRegister); err != nil {
			return err
		}
		if err := tx.SetCustomerBalance(ctx, customer.ID, newCustomer); err != nil {
			return err
		}

		entry := &domain.Transaction{
			CustomerID:     customer.ID,
			MerchantID:     merchant.ID,
			CashRegisterID: registerID,
			WorkerID:       workerID,
			Type:           domain.TransactionTypeSend,
			Code:           code,
			Amount:         amount,
			InitAmount:     decimal.Zero,
			Commission:     decimal.Zero,
		}
		if err := tx.InsertTransaction(ctx, entry); err != nil {
			return err
		}

		receipt = &domain.TransactionReceipt{
			Code:            code,
			Type:            domain.TransactionTypeSend,
			Amount:          amount,
			Commission:      decimal.Zero,
			RegisterBalance: newRegister,
			CustomerBalance: newCustomer,
			CreatedAt:       entry.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("transfer committed",
		"code", receipt.Code, "type", receipt.Type, "worker_id", workerID, "register_id", registerID)
	s.dispatcher.CustomerCredited(customer, merchant.Name, amount, receipt.CustomerBalance, code)
	s.alertIfBelowMinimum(registerID, merchant, receipt.RegisterBalance)
	return receipt, nil
}

func (s *transferService) Collect(ctx context.Context, workerID int32, workerPassword string, registerID int32, customerPhone string, amount decimal.Decimal) (*domain.TransactionReceipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(workerPassword)); err != nil {
		return nil, fmt.Errorf("password confirmation failed: %w", domain.ErrUnauthorized)
	}

	customer, merchant, err := s.resolveParties(ctx, workerID, registerID, customerPhone)
	if err != nil {
		return nil, err
	}

	net, fee := utils.SplitCommission(amount, s.rate)
	code, err := utils.GenerateTransactionCode(domain.TransactionTypeCollect)
	if err != nil {
		return nil, err
	}

	var receipt *domain.TransactionReceipt
	err = s.ledger.WithinTx(ctx, func(tx repository.TransferTx) error {
		registerBalance, err := tx.RegisterBalanceForUpdate(ctx, registerID)
		if err != nil {
			return err
		}
		customerBalance, err := tx.CustomerBalanceForUpdate(ctx, customer.ID)
		if err != nil {
			return err
		}
		if customerBalance.LessThan(amount) {
			return fmt.Errorf("customer %d holds %s: %w", customer.ID, customerBalance, domain.ErrInsufficientFunds)
		}

		newCustomer := customerBalance.Sub(amount)
		newRegister := registerBalance.Add(net)
		if err := tx.SetCustomerBalance(ctx, customer.ID, newCustomer); err != nil {
			return err
		}
		if err := tx.SetRegisterBalance(ctx, registerID, newRegister); err != nil {
			return err
		}

		entry := &domain.Transaction{
			CustomerID:     customer.ID,
			MerchantID:     merchant.ID,
			CashRegisterID: registerID,
			WorkerID:       workerID,
			Type:           domain.TransactionTypeCollect,
			Code:           code,
			Amount:         net,
			InitAmount:     decimal.Zero,
			Commission:     fee,
		}
		if err := tx.InsertTransaction(ctx, entry); err != nil {
			return err
		}

		receipt = &domain.TransactionReceipt{
			Code:            code,
			Type:            domain.TransactionTypeCollect,
			Amount:          net,
			Commission:      fee,
			RegisterBalance: newRegister,
			CustomerBalance: newCustomer,
			CreatedAt:       entry.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("transfer committed",
		"code", receipt.Code, "type", receipt.Type, "worker_id", workerID, "register_id", registerID)
	s.dispatcher.CustomerDebited(customer, merchant.Name, amount, receipt.CustomerBalance, code)
	return receipt, nil
}

func (s *transferService) Correct(ctx context.Context, workerID, transactionID int32, newAmount decimal.Decimal) (*domain.CorrectionReceipt, error) {
	if !newAmount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	session, err := s.sessions.GetOpen(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("corrections need an open session: %w", err)
	}

	var receipt *domain.CorrectionReceipt
	err = s.ledger.WithinTx(ctx, func(tx repository.TransferTx) error {
		prior, err := tx.TransactionForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if prior.WorkerID != workerID || prior.CreatedAt.Before(session.StartTime) {
			return fmt.Errorf("transaction %d is outside the open session: %w", transactionID, domain.ErrValidation)
		}

		registerBalance, err := tx.RegisterBalanceForUpdate(ctx, prior.CashRegisterID)
		if err != nil {
			return err
		}
		customerBalance, err := tx.CustomerBalanceForUpdate(ctx, prior.CustomerID)
		if err != nil {
			return err
		}

		var newRegister, newCustomer, newNet, newFee decimal.Decimal
		switch prior.Type {
		case domain.TransactionTypeSend:
			newNet, newFee = newAmount, decimal.Zero
			newRegister = registerBalance.Add(prior.Amount).Sub(newAmount)
			newCustomer = customerBalance.Sub(prior.Amount).Add(newAmount)
		case domain.TransactionTypeCollect:
			newNet, newFee = utils.SplitCommission(newAmount, s.rate)
			newRegister = registerBalance.Sub(prior.Amount).Add(newNet)
			newCustomer = customerBalance.Add(prior.Gross()).Sub(newAmount)
		default:
			return fmt.Errorf("transaction type %q: %w", prior.Type, domain.ErrValidation)
		}
		if newRegister.IsNegative() {
			return fmt.Errorf("cash register %d would go negative: %w", prior.CashRegisterID, domain.ErrInsufficientFunds)
		}
		if newCustomer.IsNegative() {
			return fmt.Errorf("customer %d would go negative: %w", prior.CustomerID, domain.ErrInsufficientFunds)
		}

		if err := tx.SetRegisterBalance(ctx, prior.CashRegisterID, newRegister); err != nil {
			return err
		}
		if err := tx.SetCustomerBalance(ctx, prior.CustomerID, newCustomer); err != nil {
			return err
		}
		if err := tx.UpdateTransactionAmounts(ctx, transactionID, newNet, newFee, prior.Amount); err != nil {
			return err
		}

		receipt = &domain.CorrectionReceipt{
			TransactionID:  transactionID,
			Code:           prior.Code,
			Type:           prior.Type,
			PreviousAmount: prior.Amount,
			Amount:         newNet,
			Commission:     newFee,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("correction committed",
		"code", receipt.Code, "transaction_id", transactionID, "worker_id", workerID,
		"previous_amount", receipt.PreviousAmount, "amount", receipt.Amount)
	return receipt, nil
}

// alertIfBelowMinimum notifies the merchant's admins when a render drained a
// register under its configured floor.
func (s *transferService) alertIfBelowMinimum(registerID int32, merchant *domain.Merchant, balance decimal.Decimal) {
	register, err := s.registers.GetByID(context.Background(), registerID)
	if err != nil {
		logger.Error("low balance check failed", "register_id", registerID, "error", err)
		return
	}
	if register.MinBalance.IsPositive() && balance.LessThan(register.MinBalance) {
		s.dispatcher.LowBalance(domain.LowBalanceRegister{
			RegisterID:   register.ID,
			RegisterName: register.Name,
			MerchantID:   register.MerchantID,
			MerchantName: merchant.Name,
			Balance:      balance,
			MinBalance:   register.MinBalance,
		})
	}
}
