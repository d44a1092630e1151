package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/models"
)

// pageBreakY is the vertical cursor threshold (mm on A4) past which table
// rendering starts a new page.
const pageBreakY = 260.0

const disclaimer = "This report is for informational purposes only and does not constitute financial advice. Past performance is not indicative of future results."

// RenderPDF renders the report as a multi-page PDF: title and summary,
// paginated investment and transaction tables, a performance chart when
// enough history exists, and a disclaimer footer on every page.
func (s *Service) RenderPDF(data *models.ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Portfolio Report - %s", data.Portfolio.Name), false)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(128, 128, 128)
		pdf.MultiCell(0, 3.5, disclaimer, "", "C", false)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, "Portfolio Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, data.Portfolio.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(96, 96, 96)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s | Timeframe: %s",
		data.GeneratedAt.Format("2006-01-02 15:04"), data.Timeframe), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	s.writeSummary(pdf, data)

	if len(data.Investments) > 0 {
		s.writeInvestmentTable(pdf, data.Investments)
	}

	if len(data.Transactions) > 0 {
		s.writeTransactionTable(pdf, data.Transactions)
	}

	if len(data.Performance) >= 2 {
		s.writePerformanceChart(pdf, data.Performance)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(pdf *fpdf.Fpdf, data *models.ReportData) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Portfolio Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	summaryRow(pdf, "Total Value", data.Summary.TotalValue, false)
	summaryRow(pdf, "Total Cost", data.Summary.TotalCost, false)
	summaryRow(pdf, "Total Return", data.Summary.TotalReturn, true)

	pdf.CellFormat(50, 7, "Return %", "", 0, "L", false, 0, "")
	setReturnColor(pdf, data.Summary.ReturnPercentage)
	pdf.CellFormat(50, 7, data.Summary.ReturnPercentage.StringFixed(2)+"%", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func summaryRow(pdf *fpdf.Fpdf, label string, value decimal.Decimal, signed bool) {
	pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
	if signed {
		setReturnColor(pdf, value)
	}
	pdf.CellFormat(50, 7, "$"+value.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// setReturnColor colors the next cell green for gains and red for losses.
func setReturnColor(pdf *fpdf.Fpdf, value decimal.Decimal) {
	if value.IsNegative() {
		pdf.SetTextColor(192, 28, 40)
	} else {
		pdf.SetTextColor(16, 124, 16)
	}
}

// breakPageIfNeeded starts a new page and re-renders the table header when
// the cursor has passed the page break threshold.
func breakPageIfNeeded(pdf *fpdf.Fpdf, header func()) {
	if pdf.GetY() > pageBreakY {
		pdf.AddPage()
		header()
	}
}

func (s *Service) writeInvestmentTable(pdf *fpdf.Fpdf, investments []*models.Investment) {
	widths := []float64{48, 24, 22, 24, 24, 24, 24}
	labels := []string{"Name", "Type", "Risk", "Cost", "Value", "Return", "Return %"}

	header := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, "Investments", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, label := range labels {
			pdf.CellFormat(widths[i], 7, label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	breakPageIfNeeded(pdf, func() {})
	header()

	for i, inv := range investments {
		breakPageIfNeeded(pdf, header)

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(widths[0], 6.5, inv.Name, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 6.5, inv.Type, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 6.5, inv.RiskLevel, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[3], 6.5, inv.Amount.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[4], 6.5, inv.CurrentValue.StringFixed(2), "1", 0, "R", fill, 0, "")

		ret := inv.Return()
		setReturnColor(pdf, ret)
		pdf.CellFormat(widths[5], 6.5, ret.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[6], 6.5, inv.ReturnPercentage().StringFixed(2)+"%", "1", 0, "R", fill, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (s *Service) writeTransactionTable(pdf *fpdf.Fpdf, transactions []*models.Transaction) {
	widths := []float64{30, 30, 30, 100}
	labels := []string{"Date", "Type", "Amount", "Notes"}

	header := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, "Recent Transactions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, label := range labels {
			pdf.CellFormat(widths[i], 7, label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}

	breakPageIfNeeded(pdf, func() {})
	header()

	for i, tx := range transactions {
		breakPageIfNeeded(pdf, header)

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(widths[0], 6.5, tx.Date.Format("2006-01-02"), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 6.5, tx.Type, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 6.5, tx.Amount.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 6.5, tx.Notes, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (s *Service) writePerformanceChart(pdf *fpdf.Fpdf, snapshots []*models.PerformanceSnapshot) {
	png, err := renderPerformanceChart(snapshots)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Performance chart skipped")
		return
	}

	if pdf.GetY() > pageBreakY-90 {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Performance History", "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("performance-chart", opts, bytes.NewReader(png))
	pdf.ImageOptions("performance-chart", pdf.GetX(), pdf.GetY(), 180, 80, false, opts, 0, "")
	pdf.Ln(84)
}
