package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report timeframes. Unknown values fall back to TimeframeAll.
const (
	Timeframe1M  = "1m"
	Timeframe3M  = "3m"
	Timeframe6M  = "6m"
	Timeframe1Y  = "1y"
	TimeframeAll = "all"
)

// TimeframeCutoff returns the inclusive lower bound for the given timeframe
// relative to now, and false when the timeframe does not bound history.
func TimeframeCutoff(timeframe string, now time.Time) (time.Time, bool) {
	switch timeframe {
	case Timeframe1M:
		return now.AddDate(0, -1, 0), true
	case Timeframe3M:
		return now.AddDate(0, -3, 0), true
	case Timeframe6M:
		return now.AddDate(0, -6, 0), true
	case Timeframe1Y:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// ReportSummary holds the aggregate figures shown at the top of a report.
type ReportSummary struct {
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalReturn      decimal.Decimal `json:"total_return"`
	ReturnPercentage decimal.Decimal `json:"return_percentage"`
}

// ReportData is the assembled input for the CSV and PDF renderers.
type ReportData struct {
	Portfolio    *Portfolio             `json:"portfolio"`
	Investments  []*Investment          `json:"investments"`
	Transactions []*Transaction         `json:"transactions"`
	Performance  []*PerformanceSnapshot `json:"performance"`
	Summary      ReportSummary          `json:"summary"`
	Timeframe    string                 `json:"timeframe"`
	GeneratedAt  time.Time              `json:"generated_at"`
}
