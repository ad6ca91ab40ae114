package domain

import "time"

// Worker is a point-of-sale cashier employed by a merchant. Workers
// authenticate with phone + password and transact against one register per
// session.
type Worker struct {
	ID           int32     `json:"id"`
	MerchantID   int32     `json:"merchant_id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
}
