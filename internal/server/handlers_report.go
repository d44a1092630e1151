package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// --- Report handlers ---

// handleReportCSV handles GET /api/reports/download/csv/{portfolioId}?timeframe=.
func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, ok := ParseID(w, strings.TrimPrefix(r.URL.Path, "/api/reports/download/csv/"))
	if !ok {
		return
	}
	if _, _, ok := s.requirePortfolio(w, r, id); !ok {
		return
	}

	data, err := s.app.Reports.Build(r.Context(), id, r.URL.Query().Get("timeframe"))
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", id).Msg("Report build failed")
		WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	body := s.app.Reports.RenderCSV(data)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", reportDisposition(data.Portfolio.Name, data.GeneratedAt, "csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleReportPDF handles GET /api/reports/download/pdf/{portfolioId}?timeframe=.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, ok := ParseID(w, strings.TrimPrefix(r.URL.Path, "/api/reports/download/pdf/"))
	if !ok {
		return
	}
	if _, _, ok := s.requirePortfolio(w, r, id); !ok {
		return
	}

	data, err := s.app.Reports.Build(r.Context(), id, r.URL.Query().Get("timeframe"))
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", id).Msg("Report build failed")
		WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	body, err := s.app.Reports.RenderPDF(data)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", id).Msg("PDF render failed")
		WriteError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", reportDisposition(data.Portfolio.Name, data.GeneratedAt, "pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// reportDisposition builds the download filename from the portfolio name.
func reportDisposition(portfolioName string, generatedAt time.Time, ext string) string {
	name := strings.ToLower(strings.ReplaceAll(portfolioName, " ", "-"))
	return fmt.Sprintf(`attachment; filename="%s-report-%s.%s"`, name, generatedAt.Format("2006-01-02"), ext)
}
