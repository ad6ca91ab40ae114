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

const pqUniqueViolation = "23505"

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Open snapshots the register balance and inserts the session in one
// transaction. The partial unique index on (worker_id) WHERE end_time IS NULL
// turns a concurrent second open into a unique violation, which maps to
// domain.ErrConflict; there is no separate check-then-act window.
func (r *sessionRepository) Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	s := &domain.WorkerSession{WorkerID: workerID, CashRegisterID: registerID}

	err = tx.QueryRowContext(ctx,
		`SELECT amount FROM cash_register_balances WHERE cash_register_id = $1`, registerID).
		Scan(&s.InitialBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cash register balance: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO worker_sessions (worker_id, cash_register_id, initial_balance)
		 VALUES ($1, $2, $3) RETURNING id, start_time`,
		workerID, registerID, s.InitialBalance).
		Scan(&s.ID, &s.StartTime)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("session already open for worker %d: %w", workerID, domain.ErrConflict)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Close(ctx context.Context, workerID int32) (*domain.WorkerSession, error) {
	query := `UPDATE worker_sessions SET end_time = now()
	          WHERE worker_id = $1 AND end_time IS NULL
	          RETURNING id, worker_id, cash_register_id, initial_balance, start_time, end_time`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, workerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no open session for worker %d: %w", workerID, domain.ErrNotFound)
	}
	return s, err
}

func (r *sessionRepository) GetOpen(ctx context.Context, workerID int32) (*domain.WorkerSession, error) {
	query := `SELECT id, worker_id, cash_register_id, initial_balance, start_time, end_time
	          FROM worker_sessions WHERE worker_id = $1 AND end_time IS NULL`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, workerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no open session for worker %d: %w", workerID, domain.ErrNotFound)
	}
	return s, err
}

func scanSession(row rowScanner) (*domain.WorkerSession, error) {
	var s domain.WorkerSession
	var endTime sql.NullTime
	err := row.Scan(&s.ID, &s.WorkerID, &s.CashRegisterID, &s.InitialBalance, &s.StartTime, &endTime)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		s.EndTime = &endTime.Time
	}
	return &s, nil
}
