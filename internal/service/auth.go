package service

import (
	"context"
	"errors"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"
	"pesapoint-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	workers   repository.WorkerRepository
	merchants repository.MerchantRepository
	tokens    security.TokenManager
}

func NewAuthService(workers repository.WorkerRepository, merchants repository.MerchantRepository, tokens security.TokenManager) AuthService {
	return &authService{workers: workers, merchants: merchants, tokens: tokens}
}

func (s *authService) LoginWorker(ctx context.Context, phone, password string) (string, *domain.Worker, error) {
	if phone == "" || password == "" {
		return "", nil, fmt.Errorf("phone and password are required: %w", domain.ErrValidation)
	}
	worker, err := s.workers.GetByPhone(ctx, phone)
	if err != nil {
		// Same response for unknown phone and bad password.
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", nil, err
	}
	if !worker.IsActive {
		return "", nil, fmt.Errorf("worker %d is deactivated: %w", worker.ID, domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateAccessToken(worker.ID, worker.Phone, domain.RoleWorker)
	if err != nil {
		return "", nil, fmt.Errorf("signing access token: %w", err)
	}
	logger.Info("worker logged in", "worker_id", worker.ID, "merchant_id", worker.MerchantID)
	return token, worker, nil
}

func (s *authService) RegisterWorker(ctx context.Context, merchantID int32, phone, name, password string) (*domain.Worker, error) {
	if phone == "" || name == "" {
		return nil, fmt.Errorf("phone and name are required: %w", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	if _, err := s.merchants.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	if _, err := s.workers.GetByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("phone %s already registered: %w", phone, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	worker := &domain.Worker{
		MerchantID:   merchantID,
		Phone:        phone,
		Name:         name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, err
	}
	logger.Info("worker registered", "worker_id", worker.ID, "merchant_id", merchantID)
	return worker, nil
}
