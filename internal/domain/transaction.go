package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	// TransactionTypeSend moves money register -> customer (a "render").
	TransactionTypeSend TransactionType = "SEND"
	// TransactionTypeCollect moves money customer -> register, commission-bearing.
	TransactionTypeCollect TransactionType = "COLLECT"
)

// Transaction is an immutable ledger entry. Rows are never deleted; an amount
// correction rewrites Amount/Commission on the same row and stashes the prior
// amount in InitAmount, which stays zero otherwise.
type Transaction struct {
	ID             int32           `json:"id"`
	CustomerID     int32           `json:"customer_id"`
	MerchantID     int32           `json:"merchant_id"`
	CashRegisterID int32           `json:"cash_register_id"`
	WorkerID       int32           `json:"worker_id"`
	Type           TransactionType `json:"type"`
	Code           string          `json:"code"`
	Amount         decimal.Decimal `json:"amount"`      // net of commission
	InitAmount     decimal.Decimal `json:"init_amount"` // pre-correction amount, 0 unless corrected
	Commission     decimal.Decimal `json:"commission"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Gross returns the amount the customer side of the movement saw: for a
// COLLECT the recorded amount is net, so the customer was debited net plus
// commission. SEND carries no commission.
func (t *Transaction) Gross() decimal.Decimal {
	if t.Type == TransactionTypeCollect {
		return t.Amount.Add(t.Commission)
	}
	return t.Amount
}

// TransactionReceipt is what a committed transfer returns to the caller.
type TransactionReceipt struct {
	Code            string          `json:"code"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Commission      decimal.Decimal `json:"commission"`
	RegisterBalance decimal.Decimal `json:"register_balance"`
	CustomerBalance decimal.Decimal `json:"customer_balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CorrectionReceipt reports a committed amount correction.
type CorrectionReceipt struct {
	TransactionID  int32           `json:"transaction_id"`
	Code           string          `json:"code"`
	Type           TransactionType `json:"type"`
	PreviousAmount decimal.Decimal `json:"previous_amount"`
	Amount         decimal.Decimal `json:"amount"`
	Commission     decimal.Decimal `json:"commission"`
}
