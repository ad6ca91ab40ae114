package postgres

import (
	"context"
	"database/sql"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (customer_id, merchant_id, channel, status, recipient, title, body)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	if n.Status == "" {
		n.Status = domain.NotificationPending
	}
	return r.db.QueryRowContext(ctx, query,
		n.CustomerID, n.MerchantID, n.Channel, n.Status, n.Recipient, n.Title, n.Body).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) ListPending(ctx context.Context, limit int32) ([]domain.Notification, error) {
	query := `SELECT id, customer_id, merchant_id, channel, status, recipient, title, body, attempts, created_at
	          FROM notifications WHERE status = 'PENDING' ORDER BY created_at LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.CustomerID, &n.MerchantID, &n.Channel, &n.Status,
			&n.Recipient, &n.Title, &n.Body, &n.Attempts, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET status = 'DELIVERED', delivered_at = now(), attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

// MarkFailed bumps the attempt counter; once maxAttempts is reached the row
// flips to FAILED and the redelivery job stops picking it up.
func (r *notificationRepository) MarkFailed(ctx context.Context, id int32, maxAttempts int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications
		 SET attempts = attempts + 1,
		     status = CASE WHEN attempts + 1 >= $2 THEN 'FAILED' ELSE 'PENDING' END
		 WHERE id = $1`, id, maxAttempts)
	return err
}
