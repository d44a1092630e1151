// Package report builds portfolio reports and renders them as CSV or PDF.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// recentTransactionLimit caps the transaction section of a report.
const recentTransactionLimit = 20

// Service implements interfaces.ReportService.
type Service struct {
	store  interfaces.Store
	logger *common.Logger
}

// NewService creates a new report service.
func NewService(store interfaces.Store, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Build gathers the portfolio, its investments, transactions, and
// performance snapshots, and computes the summary totals. The timeframe
// bounds transactions and performance history; summary totals always
// reflect current investment state.
func (s *Service) Build(ctx context.Context, portfolioID int64, timeframe string) (*models.ReportData, error) {
	pf, err := s.store.Portfolios().Get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	investments, err := s.store.Investments().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}

	transactions, err := s.store.Transactions().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	performance, err := s.store.Performance().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}

	now := time.Now().UTC()
	if cutoff, bounded := models.TimeframeCutoff(timeframe, now); bounded {
		transactions = filterTransactions(transactions, cutoff)
		performance = filterSnapshots(performance, cutoff)
	} else {
		timeframe = models.TimeframeAll
	}

	// Newest first, capped.
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Date.After(transactions[j].Date) })
	if len(transactions) > recentTransactionLimit {
		transactions = transactions[:recentTransactionLimit]
	}

	sort.Slice(performance, func(i, j int) bool { return performance[i].Date.Before(performance[j].Date) })

	data := &models.ReportData{
		Portfolio:    pf,
		Investments:  investments,
		Transactions: transactions,
		Performance:  performance,
		Summary:      summarize(investments),
		Timeframe:    timeframe,
		GeneratedAt:  now,
	}

	s.logger.Debug().
		Int64("portfolio_id", portfolioID).
		Str("timeframe", timeframe).
		Int("investments", len(investments)).
		Int("transactions", len(transactions)).
		Msg("Report data assembled")

	return data, nil
}

// summarize folds investments into the report totals. ReturnPercentage is
// zero whenever total cost is zero, regardless of value.
func summarize(investments []*models.Investment) models.ReportSummary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, inv := range investments {
		totalValue = totalValue.Add(inv.CurrentValue)
		totalCost = totalCost.Add(inv.Amount)
	}

	totalReturn := totalValue.Sub(totalCost)
	returnPct := decimal.Zero
	if totalCost.IsPositive() {
		returnPct = totalReturn.Div(totalCost).Mul(decimal.NewFromInt(100))
	}

	return models.ReportSummary{
		TotalValue:       totalValue,
		TotalCost:        totalCost,
		TotalReturn:      totalReturn,
		ReturnPercentage: returnPct,
	}
}

func filterTransactions(txs []*models.Transaction, cutoff time.Time) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range txs {
		if !tx.Date.Before(cutoff) {
			out = append(out, tx)
		}
	}
	return out
}

func filterSnapshots(snaps []*models.PerformanceSnapshot, cutoff time.Time) []*models.PerformanceSnapshot {
	var out []*models.PerformanceSnapshot
	for _, snap := range snaps {
		if !snap.Date.Before(cutoff) {
			out = append(out, snap)
		}
	}
	return out
}
