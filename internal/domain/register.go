package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister is a physical till owned by exactly one merchant. MinBalance
// is the merchant-configured floor under which a low-balance alert fires.
type CashRegister struct {
	ID         int32           `json:"id"`
	MerchantID int32           `json:"merchant_id"`
	Name       string          `json:"name"`
	MinBalance decimal.Decimal `json:"min_balance"`
	IsActive   bool            `json:"is_active"`
	CreatedOn  time.Time       `json:"created_on"`
}

// LowBalanceRegister is a register whose balance sits below its configured
// minimum, as reported by the sweep query.
type LowBalanceRegister struct {
	RegisterID   int32
	RegisterName string
	MerchantID   int32
	MerchantName string
	Balance      decimal.Decimal
	MinBalance   decimal.Decimal
}
