package report

import (
	"bytes"
	"encoding/csv"

	"github.com/foliolab/folio/internal/models"
)

// RenderCSV renders the report as a sectioned CSV document. Sections with no
// rows are omitted entirely rather than rendered as empty tables.
func (s *Service) RenderCSV(data *models.ReportData) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Portfolio Report", data.Portfolio.Name})
	w.Write([]string{"Generated", data.GeneratedAt.Format("2006-01-02 15:04")})
	w.Write([]string{"Timeframe", data.Timeframe})
	w.Write([]string{})

	w.Write([]string{"PORTFOLIO SUMMARY"})
	w.Write([]string{"Total Value", data.Summary.TotalValue.StringFixed(2)})
	w.Write([]string{"Total Cost", data.Summary.TotalCost.StringFixed(2)})
	w.Write([]string{"Total Return", data.Summary.TotalReturn.StringFixed(2)})
	w.Write([]string{"Return %", data.Summary.ReturnPercentage.StringFixed(2)})

	if len(data.Investments) > 0 {
		w.Write([]string{})
		w.Write([]string{"INVESTMENTS"})
		w.Write([]string{"Name", "Type", "Risk Level", "Cost", "Value", "Return", "Return %"})
		for _, inv := range data.Investments {
			w.Write([]string{
				inv.Name,
				inv.Type,
				inv.RiskLevel,
				inv.Amount.StringFixed(2),
				inv.CurrentValue.StringFixed(2),
				inv.Return().StringFixed(2),
				inv.ReturnPercentage().StringFixed(2),
			})
		}
	}

	if len(data.Transactions) > 0 {
		w.Write([]string{})
		w.Write([]string{"RECENT TRANSACTIONS"})
		w.Write([]string{"Date", "Type", "Amount", "Notes"})
		for _, tx := range data.Transactions {
			w.Write([]string{
				tx.Date.Format("2006-01-02"),
				tx.Type,
				tx.Amount.StringFixed(2),
				tx.Notes,
			})
		}
	}

	if len(data.Performance) > 0 {
		w.Write([]string{})
		w.Write([]string{"PERFORMANCE HISTORY"})
		w.Write([]string{"Date", "Value"})
		for _, snap := range data.Performance {
			w.Write([]string{
				snap.Date.Format("2006-01-02"),
				snap.TotalValue.StringFixed(2),
			})
		}
	}

	w.Flush()
	return buf.Bytes()
}
