package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// Authorization guard. Every handler that touches a portfolio-scoped entity
// goes through here instead of repeating the load-parent-and-compare dance:
// 401 when the request carries no identity, 404 when the entity is missing,
// 403 when it belongs to another user. Admins may access any entity.

// requireUser returns the authenticated identity or writes 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*common.UserContext, bool) {
	uc := common.UserContextFromContext(r.Context())
	if uc == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return uc, true
}

// requirePortfolio loads the portfolio and verifies the requester owns it.
func (s *Server) requirePortfolio(w http.ResponseWriter, r *http.Request, portfolioID int64) (*models.Portfolio, *common.UserContext, bool) {
	uc, ok := s.requireUser(w, r)
	if !ok {
		return nil, nil, false
	}

	pf, err := s.app.Store.Portfolios().Get(r.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("portfolio %d not found", portfolioID))
		} else {
			s.logger.Error().Err(err).Int64("portfolio_id", portfolioID).Msg("Portfolio load failed")
			WriteError(w, http.StatusInternalServerError, "failed to load portfolio")
		}
		return nil, nil, false
	}

	if pf.UserID != uc.UserID && uc.Role != models.RoleAdmin {
		WriteError(w, http.StatusForbidden, "portfolio belongs to another user")
		return nil, nil, false
	}
	return pf, uc, true
}

// requireInvestment loads the investment and verifies ownership of its
// portfolio.
func (s *Server) requireInvestment(w http.ResponseWriter, r *http.Request, investmentID int64) (*models.Investment, *models.Portfolio, bool) {
	if _, ok := s.requireUser(w, r); !ok {
		return nil, nil, false
	}

	inv, err := s.app.Store.Investments().Get(r.Context(), investmentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("investment %d not found", investmentID))
		} else {
			s.logger.Error().Err(err).Int64("investment_id", investmentID).Msg("Investment load failed")
			WriteError(w, http.StatusInternalServerError, "failed to load investment")
		}
		return nil, nil, false
	}

	pf, _, ok := s.requirePortfolio(w, r, inv.PortfolioID)
	if !ok {
		return nil, nil, false
	}
	return inv, pf, true
}
