package domain

import "errors"

// Error taxonomy for the transfer and session core. Every operation reports
// one of these before commit; a rejected call leaves balances and the
// transaction log untouched.
var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
)
