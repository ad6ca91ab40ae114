package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type merchantRepository struct {
	db *sql.DB
}

func NewMerchantRepository(db *sql.DB) repository.MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(ctx context.Context, m *domain.Merchant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO merchants (name) VALUES ($1) RETURNING id, created_on`, m.Name).
		Scan(&m.ID, &m.CreatedOn)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO merchant_balances (merchant_id, amount) VALUES ($1, 0)`, m.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *merchantRepository) GetByID(ctx context.Context, id int32) (*domain.Merchant, error) {
	var m domain.Merchant
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_on FROM merchants WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("merchant: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *merchantRepository) GetBalance(ctx context.Context, merchantID int32) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT amount FROM merchant_balances WHERE merchant_id = $1`, merchantID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("merchant balance: %w", domain.ErrNotFound)
	}
	return amount, err
}

func (r *merchantRepository) ListAdmins(ctx context.Context, merchantID int32) ([]domain.MerchantAdmin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, merchant_id, email, name FROM merchant_admins WHERE merchant_id = $1`, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.MerchantAdmin
	for rows.Next() {
		var a domain.MerchantAdmin
		if err := rows.Scan(&a.ID, &a.MerchantID, &a.Email, &a.Name); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
