package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/models"
	"github.com/foliolab/folio/internal/services/ledger"
)

// --- Transaction handlers ---

// handlePortfolioTransactions handles /api/portfolios/{id}/transactions.
func (s *Server) handlePortfolioTransactions(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r, portfolioID)
	case http.MethodPost:
		s.handleTransactionCreate(w, r, portfolioID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleTransactionList handles GET /api/portfolios/{id}/transactions.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	if _, _, ok := s.requirePortfolio(w, r, portfolioID); !ok {
		return
	}

	transactions, err := s.app.Store.Transactions().ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Transaction list failed")
		WriteError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	WriteJSON(w, http.StatusOK, transactions)
}

// handleTransactionCreate handles POST /api/portfolios/{id}/transactions.
// The write is delegated to the ledger, which owns aggregate maintenance.
func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request, portfolioID int64) {
	if _, _, ok := s.requirePortfolio(w, r, portfolioID); !ok {
		return
	}

	var req struct {
		InvestmentID int64           `json:"investment_id"`
		Type         string          `json:"transaction_type"`
		Amount       decimal.Decimal `json:"amount"`
		Date         *time.Time      `json:"date"`
		Notes        string          `json:"notes"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx := &models.Transaction{
		PortfolioID:  portfolioID,
		InvestmentID: req.InvestmentID,
		Type:         req.Type,
		Amount:       req.Amount,
		Notes:        req.Notes,
	}
	if req.Date != nil {
		tx.Date = req.Date.UTC()
	}

	result, err := s.app.Ledger.Record(r.Context(), tx)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidType),
			errors.Is(err, ledger.ErrNonPositive),
			errors.Is(err, ledger.ErrWrongPortfolio),
			errors.Is(err, ledger.ErrUnknownReference):
			WriteError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Transaction record failed")
			WriteError(w, http.StatusInternalServerError, "failed to record transaction")
		}
		return
	}

	WriteJSON(w, http.StatusCreated, result)
}
