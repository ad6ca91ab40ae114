package postgres

import "database/sql"

// Bootstrap creates the tables and indexes if they do not exist. Balances are
// NUMERIC(18,2); the partial unique index on worker_sessions is what makes
// the one-open-session invariant race-free.
func Bootstrap(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS merchants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS merchant_admins (
			id SERIAL PRIMARY KEY,
			merchant_id INTEGER NOT NULL REFERENCES merchants(id),
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS merchant_balances (
			merchant_id INTEGER PRIMARY KEY REFERENCES merchants(id),
			amount NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (amount >= 0),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			phone TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			qr_code TEXT NOT NULL UNIQUE,
			device_token TEXT NOT NULL DEFAULT '',
			is_mobile BOOLEAN NOT NULL DEFAULT FALSE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customer_balances (
			customer_id INTEGER PRIMARY KEY REFERENCES customers(id),
			amount NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (amount >= 0),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cash_registers (
			id SERIAL PRIMARY KEY,
			merchant_id INTEGER NOT NULL REFERENCES merchants(id),
			name TEXT NOT NULL,
			min_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cash_register_balances (
			cash_register_id INTEGER PRIMARY KEY REFERENCES cash_registers(id),
			amount NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (amount >= 0),
			updated_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS workers (
			id SERIAL PRIMARY KEY,
			merchant_id INTEGER NOT NULL REFERENCES merchants(id),
			phone TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			merchant_id INTEGER NOT NULL REFERENCES merchants(id),
			cash_register_id INTEGER NOT NULL REFERENCES cash_registers(id),
			worker_id INTEGER NOT NULL REFERENCES workers(id),
			type TEXT NOT NULL CHECK (type IN ('SEND', 'COLLECT')),
			code TEXT NOT NULL UNIQUE,
			amount NUMERIC(18,2) NOT NULL,
			init_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			commission NUMERIC(18,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_worker_created
			ON transactions (worker_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_customer_created
			ON transactions (customer_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS worker_sessions (
			id SERIAL PRIMARY KEY,
			worker_id INTEGER NOT NULL REFERENCES workers(id),
			cash_register_id INTEGER NOT NULL REFERENCES cash_registers(id),
			initial_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
			start_time TIMESTAMPTZ NOT NULL DEFAULT now(),
			end_time TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_worker_sessions_single_open
			ON worker_sessions (worker_id) WHERE end_time IS NULL`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id),
			merchant_id INTEGER REFERENCES merchants(id),
			channel TEXT NOT NULL CHECK (channel IN ('PUSH', 'SMS', 'EMAIL')),
			status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'DELIVERED', 'FAILED')),
			recipient TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			delivered_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_pending
			ON notifications (created_at) WHERE status = 'PENDING'`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
