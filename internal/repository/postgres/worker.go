package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"

	"github.com/lib/pq"
)

type workerRepository struct {
	db *sql.DB
}

func NewWorkerRepository(db *sql.DB) repository.WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (merchant_id, phone, name, password_hash, is_active)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, w.MerchantID, w.Phone, w.Name, w.PasswordHash, w.IsActive).
		Scan(&w.ID, &w.CreatedOn)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("phone %s already registered: %w", w.Phone, domain.ErrConflict)
	}
	return err
}

func (r *workerRepository) GetByID(ctx context.Context, id int32) (*domain.Worker, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *workerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Worker, error) {
	return r.get(ctx, `WHERE phone = $1`, phone)
}

func (r *workerRepository) get(ctx context.Context, where string, arg any) (*domain.Worker, error) {
	query := `SELECT id, merchant_id, phone, name, password_hash, is_active, created_on
	          FROM workers ` + where
	var w domain.Worker
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&w.ID, &w.MerchantID, &w.Phone, &w.Name, &w.PasswordHash, &w.IsActive, &w.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("worker: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
