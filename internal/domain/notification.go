package domain

import "time"

type NotificationChannel string

const (
	ChannelPush  NotificationChannel = "PUSH"
	ChannelSMS   NotificationChannel = "SMS"
	ChannelEmail NotificationChannel = "EMAIL"
)

type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "PENDING"
	NotificationDelivered NotificationStatus = "DELIVERED"
	NotificationFailed    NotificationStatus = "FAILED"
)

// Notification is an outbox row written after a financial commit. Delivery is
// best-effort and retried by the cron runner; it never participates in the
// transaction that produced it.
type Notification struct {
	ID          int32               `json:"id"`
	CustomerID  *int32              `json:"customer_id,omitempty"`
	MerchantID  *int32              `json:"merchant_id,omitempty"`
	Channel     NotificationChannel `json:"channel"`
	Status      NotificationStatus  `json:"status"`
	Recipient   string              `json:"recipient"` // device token, phone or email depending on channel
	Title       string              `json:"title"`
	Body        string              `json:"body"`
	Attempts    int32               `json:"attempts"`
	CreatedAt   time.Time           `json:"created_at"`
	DeliveredAt *time.Time          `json:"delivered_at,omitempty"`
}
