package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/models"
)

// --- Investment handlers ---

// handlePortfolioInvestments handles /api/portfolios/{id}/investments.
func (s *Server) handlePortfolioInvestments(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	switch r.Method {
	case http.MethodGet:
		s.handleInvestmentList(w, r, portfolioID)
	case http.MethodPost:
		s.handleInvestmentCreate(w, r, portfolioID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleInvestmentList handles GET /api/portfolios/{id}/investments.
func (s *Server) handleInvestmentList(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	if _, _, ok := s.requirePortfolio(w, r, portfolioID); !ok {
		return
	}

	investments, err := s.app.Store.Investments().ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Investment list failed")
		WriteError(w, http.StatusInternalServerError, "failed to list investments")
		return
	}
	if investments == nil {
		investments = []*models.Investment{}
	}

	WriteJSON(w, http.StatusOK, investments)
}

// handleInvestmentCreate handles POST /api/portfolios/{id}/investments.
// CurrentValue starts at the cost basis; only transactions move it afterward.
func (s *Server) handleInvestmentCreate(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	pf, _, ok := s.requirePortfolio(w, r, portfolioID)
	if !ok {
		return
	}

	var req struct {
		Name         string          `json:"name"`
		Type         string          `json:"type"`
		RiskLevel    string          `json:"risk_level"`
		Amount       decimal.Decimal `json:"amount"`
		PurchaseDate *time.Time      `json:"purchase_date"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Amount.IsNegative() {
		WriteError(w, http.StatusBadRequest, "amount cannot be negative")
		return
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = req.PurchaseDate.UTC()
	}

	inv, err := s.app.Store.Investments().Create(r.Context(), &models.Investment{
		PortfolioID:  portfolioID,
		Name:         req.Name,
		Type:         req.Type,
		RiskLevel:    req.RiskLevel,
		Amount:       req.Amount,
		CurrentValue: req.Amount,
		PurchaseDate: purchaseDate,
		CreatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Investment create failed")
		WriteError(w, http.StatusInternalServerError, "failed to create investment")
		return
	}

	// The new holding counts toward the portfolio total immediately.
	pf.TotalValue = pf.TotalValue.Add(inv.CurrentValue)
	if _, err := s.app.Store.Portfolios().Update(r.Context(), pf); err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Portfolio total update failed after investment create")
	}

	WriteJSON(w, http.StatusCreated, inv)
}

// handleInvestmentByID dispatches GET/PUT/DELETE for /api/investments/{id}.
func (s *Server) handleInvestmentByID(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		s.handleInvestmentGet(w, r, id)
	case http.MethodPut:
		s.handleInvestmentUpdate(w, r, id)
	case http.MethodDelete:
		s.handleInvestmentDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleInvestmentGet handles GET /api/investments/{id}.
func (s *Server) handleInvestmentGet(w http.ResponseWriter, r *http.Request, id int64) {
	inv, _, ok := s.requireInvestment(w, r, id)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, inv)
}

// handleInvestmentUpdate handles PUT /api/investments/{id}. Descriptive
// fields only; Amount and CurrentValue are ledger territory.
func (s *Server) handleInvestmentUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	inv, _, ok := s.requireInvestment(w, r, id)
	if !ok {
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Type      *string `json:"type"`
		RiskLevel *string `json:"risk_level"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		inv.Name = *req.Name
	}
	if req.Type != nil {
		inv.Type = *req.Type
	}
	if req.RiskLevel != nil {
		inv.RiskLevel = *req.RiskLevel
	}

	updated, err := s.app.Store.Investments().Update(r.Context(), inv)
	if err != nil {
		s.logger.Error().Err(err).Int64("investment_id", id).Msg("Investment update failed")
		WriteError(w, http.StatusInternalServerError, "failed to update investment")
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// handleInvestmentDelete handles DELETE /api/investments/{id}. The holding's
// current value is removed from the portfolio total.
func (s *Server) handleInvestmentDelete(w http.ResponseWriter, r *http.Request, id int64) {
	inv, pf, ok := s.requireInvestment(w, r, id)
	if !ok {
		return
	}

	if err := s.app.Store.Investments().Delete(r.Context(), id); err != nil {
		s.logger.Error().Err(err).Int64("investment_id", id).Msg("Investment delete failed")
		WriteError(w, http.StatusInternalServerError, "failed to delete investment")
		return
	}

	pf.TotalValue = pf.TotalValue.Sub(inv.CurrentValue)
	if pf.TotalValue.IsNegative() {
		pf.TotalValue = decimal.Zero
	}
	if _, err := s.app.Store.Portfolios().Update(r.Context(), pf); err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", pf.ID).Msg("Portfolio total update failed after investment delete")
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
