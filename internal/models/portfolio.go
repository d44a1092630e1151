package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio is a user-owned container aggregating investments. TotalValue is
// a denormalized aggregate maintained by the ledger service on every
// transaction write; it is never recomputed from market data.
type Portfolio struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	TotalValue  decimal.Decimal `json:"total_value"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Investment is a tracked holding within a portfolio. Amount is the cost
// basis; CurrentValue is mutated only through transactions.
type Investment struct {
	ID           int64           `json:"id"`
	PortfolioID  int64           `json:"portfolio_id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	RiskLevel    string          `json:"risk_level"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"current_value"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Return is the gain or loss on the holding relative to cost basis.
func (i *Investment) Return() decimal.Decimal {
	return i.CurrentValue.Sub(i.Amount)
}

// ReturnPercentage is the return expressed as a percentage of cost basis,
// or zero when the cost basis is zero.
func (i *Investment) ReturnPercentage() decimal.Decimal {
	if i.Amount.IsZero() {
		return decimal.Zero
	}
	return i.Return().Div(i.Amount).Mul(decimal.NewFromInt(100))
}

// PerformanceSnapshot is a timestamped record of a portfolio's total value.
// Snapshots are append-only and never mutated or deleted.
type PerformanceSnapshot struct {
	ID          int64           `json:"id"`
	PortfolioID int64           `json:"portfolio_id"`
	Date        time.Time       `json:"date"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
