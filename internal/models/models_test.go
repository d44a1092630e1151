package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDelta(t *testing.T) {
	amount := decimal.RequireFromString("250")

	tests := []struct {
		txType string
		want   string
	}{
		{TransactionPurchase, "250"},
		{TransactionDeposit, "250"},
		{TransactionSale, "-250"},
		{TransactionWithdrawal, "-250"},
	}

	for _, tt := range tests {
		tx := &Transaction{Type: tt.txType, Amount: amount}
		got := tx.Delta()
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s: got %s", tt.txType, got)
	}
}

func TestValidTransactionType(t *testing.T) {
	for _, valid := range []string{TransactionPurchase, TransactionSale, TransactionDeposit, TransactionWithdrawal} {
		assert.True(t, ValidTransactionType(valid), valid)
	}
	for _, invalid := range []string{"", "transfer", "PURCHASE", "buy"} {
		assert.False(t, ValidTransactionType(invalid), invalid)
	}
}

func TestInvestmentReturn(t *testing.T) {
	inv := &Investment{
		Amount:       decimal.RequireFromString("1000"),
		CurrentValue: decimal.RequireFromString("1250"),
	}
	assert.True(t, inv.Return().Equal(decimal.RequireFromString("250")))
	assert.True(t, inv.ReturnPercentage().Equal(decimal.RequireFromString("25")))
}

func TestInvestmentReturnPercentage_ZeroCost(t *testing.T) {
	inv := &Investment{
		Amount:       decimal.Zero,
		CurrentValue: decimal.RequireFromString("500"),
	}
	assert.True(t, inv.ReturnPercentage().IsZero())
}

func TestTimeframeCutoff(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		timeframe string
		want      time.Time
		bounded   bool
	}{
		{Timeframe1M, time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC), true},
		{Timeframe3M, time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC), true},
		{Timeframe6M, time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC), true},
		{Timeframe1Y, time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC), true},
		{TimeframeAll, time.Time{}, false},
		{"bogus", time.Time{}, false},
	}

	for _, tt := range tests {
		got, bounded := TimeframeCutoff(tt.timeframe, now)
		assert.Equal(t, tt.bounded, bounded, tt.timeframe)
		if tt.bounded {
			assert.True(t, got.Equal(tt.want), "%s: got %s", tt.timeframe, got)
		}
	}
}
