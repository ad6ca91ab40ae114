package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// transferTx implements repository.TransferTx over one *sql.Tx. The FOR
// UPDATE reads hold their row locks until WithinTx commits or rolls back.
type transferTx struct {
	tx *sql.Tx
}

func (r *ledgerRepository) WithinTx(ctx context.Context, fn func(tx repository.TransferTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&transferTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (t *transferTx) balanceForUpdate(ctx context.Context, query string, id int32, owner string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := t.tx.QueryRowContext(ctx, query, id).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%s balance: %w", owner, domain.ErrNotFound)
	}
	return amount, err
}

func (t *transferTx) CustomerBalanceForUpdate(ctx context.Context, customerID int32) (decimal.Decimal, error) {
	return t.balanceForUpdate(ctx,
		`SELECT amount FROM customer_balances WHERE customer_id = $1 FOR UPDATE`, customerID, "customer")
}

func (t *transferTx) RegisterBalanceForUpdate(ctx context.Context, registerID int32) (decimal.Decimal, error) {
	return t.balanceForUpdate(ctx,
		`SELECT amount FROM cash_register_balances WHERE cash_register_id = $1 FOR UPDATE`, registerID, "cash register")
}

func (t *transferTx) MerchantBalanceForUpdate(ctx context.Context, merchantID int32) (decimal.Decimal, error) {
	return t.balanceForUpdate(ctx,
		`SELECT amount FROM merchant_balances WHERE merchant_id = $1 FOR UPDATE`, merchantID, "merchant")
}

func (t *transferTx) setBalance(ctx context.Context, query string, id int32, amount decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx, query, amount, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("balance row vanished: %w", domain.ErrNotFound)
	}
	return nil
}

func (t *transferTx) SetCustomerBalance(ctx context.Context, customerID int32, amount decimal.Decimal) error {
	return t.setBalance(ctx,
		`UPDATE customer_balances SET amount = $1, updated_on = now() WHERE customer_id = $2`, customerID, amount)
}

func (t *transferTx) SetRegisterBalance(ctx context.Context, registerID int32, amount decimal.Decimal) error {
	return t.setBalance(ctx,
		`UPDATE cash_register_balances SET amount = $1, updated_on = now() WHERE cash_register_id = $2`, registerID, amount)
}

func (t *transferTx) SetMerchantBalance(ctx context.Context, merchantID int32, amount decimal.Decimal) error {
	return t.setBalance(ctx,
		`UPDATE merchant_balances SET amount = $1, updated_on = now() WHERE merchant_id = $2`, merchantID, amount)
}

func (t *transferTx) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (customer_id, merchant_id, cash_register_id, worker_id, type, code, amount, init_amount, commission)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`
	return t.tx.QueryRowContext(ctx, query,
		tx.CustomerID, tx.MerchantID, tx.CashRegisterID, tx.WorkerID,
		tx.Type, tx.Code, tx.Amount, tx.InitAmount, tx.Commission).
		Scan(&tx.ID, &tx.CreatedAt)
}

func (t *transferTx) TransactionForUpdate(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT id, customer_id, merchant_id, cash_register_id, worker_id, type, code, amount, init_amount, commission, created_at
	          FROM transactions WHERE id = $1 FOR UPDATE`
	return scanTransaction(t.tx.QueryRowContext(ctx, query, id))
}

func (t *transferTx) UpdateTransactionAmounts(ctx context.Context, id int32, amount, commission, initAmount decimal.Decimal) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE transactions SET amount = $1, commission = $2, init_amount = $3 WHERE id = $4`,
		amount, commission, initAmount, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction: %w", domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.CustomerID, &tx.MerchantID, &tx.CashRegisterID, &tx.WorkerID,
		&tx.Type, &tx.Code, &tx.Amount, &tx.InitAmount, &tx.Commission, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

const transactionColumns = `id, customer_id, merchant_id, cash_register_id, worker_id, type, code, amount, init_amount, commission, created_at`

func (r *ledgerRepository) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *ledgerRepository) GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE code = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, query, code))
}

func (r *ledgerRepository) ListByWorkerSince(ctx context.Context, workerID int32, since time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM transactions WHERE worker_id = $1 AND created_at >= $2 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, workerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.MerchantID, &tx.CashRegisterID, &tx.WorkerID,
			&tx.Type, &tx.Code, &tx.Amount, &tx.InitAmount, &tx.Commission, &tx.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *ledgerRepository) ListByCustomer(ctx context.Context, customerID int32, limit, offset int32) ([]domain.Transaction, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM transactions WHERE customer_id = $1`, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + `
	          FROM transactions WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.MerchantID, &tx.CashRegisterID, &tx.WorkerID,
			&tx.Type, &tx.Code, &tx.Amount, &tx.InitAmount, &tx.Commission, &tx.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	return txs, count, rows.Err()
}
