package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"pesapoint-backend/internal/domain"
)

// Code prefixes: SC for a send (register to customer), RC for a collect.
const (
	codePrefixSend    = "SC"
	codePrefixCollect = "RC"
)

// GenerateTransactionCode builds a globally unique transaction code of the
// form TX-SC250115.143205.9F3A2C01. The timestamp is for support lookups
// only; the random suffix carries the uniqueness. Codes are never used for
// ordering.
func GenerateTransactionCode(txType domain.TransactionType) (string, error) {
	var prefix string
	switch txType {
	case domain.TransactionTypeSend:
		prefix = codePrefixSend
	case domain.TransactionTypeCollect:
		prefix = codePrefixCollect
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, txType)
	}

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating code suffix: %w", err)
	}

	now := time.Now()
	return fmt.Sprintf("TX-%s%s.%s.%s",
		prefix,
		now.Format("060102"),
		now.Format("150405"),
		strings.ToUpper(hex.EncodeToString(buf)),
	), nil
}
