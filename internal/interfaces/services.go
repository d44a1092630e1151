package interfaces

import (
	"context"

	"github.com/foliolab/folio/internal/models"
)

// LedgerService records transactions and maintains the denormalized
// investment and portfolio aggregates.
type LedgerService interface {
	// Record persists the transaction (append-only, unconditional) and then
	// applies its signed effect to the investment's current value and the
	// portfolio's total value, flooring both at zero. Aggregate update
	// failures do not fail the call; they are reported on the result.
	Record(ctx context.Context, tx *models.Transaction) (*models.TransactionResult, error)
}

// ReportService assembles portfolio report data and renders it.
type ReportService interface {
	Build(ctx context.Context, portfolioID int64, timeframe string) (*models.ReportData, error)
	RenderCSV(data *models.ReportData) []byte
	RenderPDF(data *models.ReportData) ([]byte, error)
}
