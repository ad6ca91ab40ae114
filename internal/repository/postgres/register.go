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

type cashRegisterRepository struct {
	db *sql.DB
}

func NewCashRegisterRepository(db *sql.DB) repository.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) Create(ctx context.Context, reg *domain.CashRegister) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO cash_registers (merchant_id, name, min_balance, is_active)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, reg.MerchantID, reg.Name, reg.MinBalance, reg.IsActive).
		Scan(&reg.ID, &reg.CreatedOn)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO cash_register_balances (cash_register_id, amount) VALUES ($1, 0)`, reg.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id int32) (*domain.CashRegister, error) {
	query := `SELECT id, merchant_id, name, min_balance, is_active, created_on
	          FROM cash_registers WHERE id = $1`
	var reg domain.CashRegister
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&reg.ID, &reg.MerchantID, &reg.Name, &reg.MinBalance, &reg.IsActive, &reg.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cash register: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *cashRegisterRepository) GetBalance(ctx context.Context, registerID int32) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT amount FROM cash_register_balances WHERE cash_register_id = $1`, registerID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("cash register balance: %w", domain.ErrNotFound)
	}
	return amount, err
}

func (r *cashRegisterRepository) ListByMerchant(ctx context.Context, merchantID int32) ([]domain.CashRegister, error) {
	query := `SELECT id, merchant_id, name, min_balance, is_active, created_on
	          FROM cash_registers WHERE merchant_id = $1 AND is_active ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registers []domain.CashRegister
	for rows.Next() {
		var reg domain.CashRegister
		if err := rows.Scan(&reg.ID, &reg.MerchantID, &reg.Name, &reg.MinBalance, &reg.IsActive, &reg.CreatedOn); err != nil {
			return nil, err
		}
		registers = append(registers, reg)
	}
	return registers, rows.Err()
}

func (r *cashRegisterRepository) ListBelowMinimum(ctx context.Context) ([]domain.LowBalanceRegister, error) {
	query := `SELECT cr.id, cr.name, m.id, m.name, b.amount, cr.min_balance
	          FROM cash_registers cr
	          JOIN cash_register_balances b ON b.cash_register_id = cr.id
	          JOIN merchants m ON m.id = cr.merchant_id
	          WHERE cr.is_active AND b.amount < cr.min_balance`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var low []domain.LowBalanceRegister
	for rows.Next() {
		var lb domain.LowBalanceRegister
		if err := rows.Scan(&lb.RegisterID, &lb.RegisterName, &lb.MerchantID, &lb.MerchantName, &lb.Balance, &lb.MinBalance); err != nil {
			return nil, err
		}
		low = append(low, lb)
	}
	return low, rows.Err()
}
