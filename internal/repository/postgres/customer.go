package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts the customer and its zero balance in one transaction, so a
// customer row never exists without a balance row.
func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO customers (phone, first_name, last_name, qr_code, device_token, is_mobile)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, c.Phone, c.FirstName, c.LastName, c.QRCode, c.DeviceToken, c.IsMobile).
		Scan(&c.ID, &c.CreatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("phone %s already registered: %w", c.Phone, domain.ErrConflict)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO customer_balances (customer_id, amount) VALUES ($1, 0)`, c.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.get(ctx, `WHERE phone = $1`, phone)
}

func (r *customerRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Customer, error) {
	return r.get(ctx, `WHERE qr_code = $1`, qrCode)
}

func (r *customerRepository) get(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	query := `SELECT id, phone, first_name, last_name, qr_code, device_token, is_mobile, created_on
	          FROM customers ` + where
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.Phone, &c.FirstName, &c.LastName, &c.QRCode, &c.DeviceToken, &c.IsMobile, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) UpdateDeviceToken(ctx context.Context, id int32, token string, isMobile bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET device_token = $1, is_mobile = $2 WHERE id = $3`, token, isMobile, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("customer: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) GetBalance(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT amount FROM customer_balances WHERE customer_id = $1`, customerID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("customer balance: %w", domain.ErrNotFound)
	}
	return amount, err
}
