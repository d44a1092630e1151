package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/models"
)

// --- Performance handlers ---

// handlePortfolioPerformance handles /api/portfolios/{id}/performance.
func (s *Server) handlePortfolioPerformance(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	switch r.Method {
	case http.MethodGet:
		s.handlePerformanceList(w, r, portfolioID)
	case http.MethodPost:
		s.handlePerformanceCreate(w, r, portfolioID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePerformanceList handles GET /api/portfolios/{id}/performance.
func (s *Server) handlePerformanceList(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	if _, _, ok := s.requirePortfolio(w, r, portfolioID); !ok {
		return
	}

	snapshots, err := s.app.Store.Performance().ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Performance list failed")
		WriteError(w, http.StatusInternalServerError, "failed to list performance history")
		return
	}
	if snapshots == nil {
		snapshots = []*models.PerformanceSnapshot{}
	}

	WriteJSON(w, http.StatusOK, snapshots)
}

// handlePerformanceCreate handles POST /api/portfolios/{id}/performance,
// appending a snapshot. When no value is given, the portfolio's current total
// is recorded.
func (s *Server) handlePerformanceCreate(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	pf, _, ok := s.requirePortfolio(w, r, portfolioID)
	if !ok {
		return
	}

	var req struct {
		Date       *time.Time       `json:"date"`
		TotalValue *decimal.Decimal `json:"total_value"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	snap := &models.PerformanceSnapshot{
		PortfolioID: portfolioID,
		Date:        time.Now().UTC(),
		TotalValue:  pf.TotalValue,
	}
	if req.Date != nil {
		snap.Date = req.Date.UTC()
	}
	if req.TotalValue != nil {
		if req.TotalValue.IsNegative() {
			WriteError(w, http.StatusBadRequest, "total_value cannot be negative")
			return
		}
		snap.TotalValue = *req.TotalValue
	}

	created, err := s.app.Store.Performance().Create(r.Context(), snap)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Performance snapshot create failed")
		WriteError(w, http.StatusInternalServerError, "failed to record performance snapshot")
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}
