package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Purchases and deposits increase the owning investment's
// current value; sales and withdrawals decrease it.
const (
	TransactionPurchase   = "purchase"
	TransactionSale       = "sale"
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

// ValidTransactionType reports whether t is a recognized transaction type.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionPurchase, TransactionSale, TransactionDeposit, TransactionWithdrawal:
		return true
	}
	return false
}

// Transaction is an immutable append-only event against an investment.
// Amount is always positive; the sign of its effect is derived from Type.
type Transaction struct {
	ID           int64           `json:"id"`
	PortfolioID  int64           `json:"portfolio_id"`
	InvestmentID int64           `json:"investment_id"`
	Type         string          `json:"transaction_type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes,omitempty"`
}

// Delta returns the signed effect of the transaction on aggregates:
// +Amount for purchase/deposit, -Amount for sale/withdrawal.
func (t *Transaction) Delta() decimal.Decimal {
	switch t.Type {
	case TransactionSale, TransactionWithdrawal:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// TransactionResult is returned by the ledger after recording a transaction.
// ClampApplied is set when an over-withdrawal was floored at zero.
// AggregatesStale is set when the transaction was persisted but one of the
// aggregate updates failed; totals then lag the transaction log.
type TransactionResult struct {
	Transaction     *Transaction `json:"transaction"`
	ClampApplied    bool         `json:"clamp_applied,omitempty"`
	AggregatesStale bool         `json:"aggregates_stale,omitempty"`
}
