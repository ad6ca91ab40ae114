package service

import (
	"context"
	"errors"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type customerService struct {
	customers repository.CustomerRepository
	ledger    repository.LedgerRepository
}

func NewCustomerService(customers repository.CustomerRepository, ledger repository.LedgerRepository) CustomerService {
	return &customerService{customers: customers, ledger: ledger}
}

func (s *customerService) LookupByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone is required: %w", domain.ErrValidation)
	}
	customer, err := s.customers.GetByPhone(ctx, phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// First contact at a point of sale: provision a bare account so the
	// transfer can proceed. The customer claims it later from the app.
	customer = &domain.Customer{
		Phone:    phone,
		QRCode:   uuid.NewString(),
		IsMobile: false,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		// Lost a race with a concurrent lookup for the same phone.
		if errors.Is(err, domain.ErrConflict) {
			return s.customers.GetByPhone(ctx, phone)
		}
		return nil, err
	}
	logger.Info("customer provisioned", "customer_id", customer.ID, "phone", phone)
	return customer, nil
}

func (s *customerService) LookupByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error) {
	if qrCode == "" {
		return nil, fmt.Errorf("qr code is required: %w", domain.ErrValidation)
	}
	return s.customers.GetByQRCode(ctx, qrCode)
}

func (s *customerService) RegisterDevice(ctx context.Context, customerID int32, deviceToken string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is required: %w", domain.ErrValidation)
	}
	return s.customers.UpdateDeviceToken(ctx, customerID, deviceToken, true)
}

func (s *customerService) GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	return s.customers.GetBalance(ctx, customerID)
}

func (s *customerService) ListTransactions(ctx context.Context, customerID, page, pageSize int32) ([]domain.Transaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, 0, err
	}
	return s.ledger.ListByCustomer(ctx, customerID, pageSize, (page-1)*pageSize)
}
