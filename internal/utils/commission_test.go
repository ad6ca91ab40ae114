package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitCommission(t *testing.T) {
	tests := []struct {
		amount      string
		expectedNet string
		expectedFee string
	}{
		{"1000", "965", "35"},
		{"2000", "1930", "70"},
		{"100", "96.5", "3.5"},
		{"1", "0.96", "0.04"}, // 0.035 rounds half away from zero
		{"333", "321.34", "11.66"},
		{"0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			net, fee := SplitCommission(decimal.RequireFromString(tt.amount), DefaultCommissionRate)
			assert.True(t, net.Add(fee).Equal(decimal.RequireFromString(tt.amount)), "net+fee must equal gross")
			assert.True(t, fee.Equal(decimal.RequireFromString(tt.expectedFee)), "fee: got %s want %s", fee, tt.expectedFee)
			assert.True(t, net.Equal(decimal.RequireFromString(tt.expectedNet)), "net: got %s want %s", net, tt.expectedNet)
		})
	}
}

func TestSplitCommission_ReferenceScenario(t *testing.T) {
	// collect 1000 at 3.5%: register is credited 965, commission is 35.
	net, fee := SplitCommission(decimal.NewFromInt(1000), DefaultCommissionRate)
	assert.True(t, net.Equal(decimal.NewFromInt(965)))
	assert.True(t, fee.Equal(decimal.NewFromInt(35)))
}

func TestRoundRegisterTransferAmount(t *testing.T) {
	assert.True(t, RoundRegisterTransferAmount(decimal.RequireFromString("1500.75")).Equal(decimal.NewFromInt(1501)))
	assert.True(t, RoundRegisterTransferAmount(decimal.RequireFromString("1500.25")).Equal(decimal.NewFromInt(1500)))
}

func TestRoundRechargeAmount(t *testing.T) {
	assert.True(t, RoundRechargeAmount(decimal.RequireFromString("99.999")).Equal(decimal.RequireFromString("100")))
	assert.True(t, RoundRechargeAmount(decimal.RequireFromString("99.994")).Equal(decimal.RequireFromString("99.99")))
}
