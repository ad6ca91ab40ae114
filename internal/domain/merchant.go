package domain

import "time"

type Merchant struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
}

// MerchantAdmin receives session reports and low-balance alerts for a
// merchant's registers.
type MerchantAdmin struct {
	ID         int32  `json:"id"`
	MerchantID int32  `json:"merchant_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}
