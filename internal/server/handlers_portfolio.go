package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// --- Portfolio handlers ---

// handlePortfolios handles /api/portfolios for list and create.
func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioList(w, r)
	case http.MethodPost:
		s.handlePortfolioCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePortfolioList handles GET /api/portfolios, listing the requester portfolios.
func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	portfolios, err := s.app.Store.Portfolios().ListByUser(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", uc.UserID).Msg("Portfolio list failed")
		WriteError(w, http.StatusInternalServerError, "failed to list portfolios")
		return
	}
	if portfolios == nil {
		portfolios = []*models.Portfolio{}
	}

	WriteJSON(w, http.StatusOK, portfolios)
}

// handlePortfolioCreate handles POST /api/portfolios.
func (s *Server) handlePortfolioCreate(w http.ResponseWriter, r *http.Request) {
	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	portfolio, err := s.app.Store.Portfolios().Create(r.Context(), &models.Portfolio{
		UserID:      uc.UserID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", uc.UserID).Msg("Portfolio create failed")
		WriteError(w, http.StatusInternalServerError, "failed to create portfolio")
		return
	}

	WriteJSON(w, http.StatusCreated, portfolio)
}

// handlePortfolioByID dispatches GET/PUT/DELETE for /api/portfolios/{id}.
func (s *Server) handlePortfolioByID(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioGet(w, r, id)
	case http.MethodPut:
		s.handlePortfolioUpdate(w, r, id)
	case http.MethodDelete:
		s.handlePortfolioDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handlePortfolioGet handles GET /api/portfolios/{id}.
func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request, id int64) {
	pf, _, ok := s.requirePortfolio(w, r, id)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, pf)
}

// handlePortfolioUpdate handles PUT /api/portfolios/{id}. Only descriptive
// fields are writable; TotalValue belongs to the ledger.
func (s *Server) handlePortfolioUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	pf, _, ok := s.requirePortfolio(w, r, id)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		pf.Name = *req.Name
	}
	if req.Description != nil {
		pf.Description = *req.Description
	}
	if req.IsActive != nil {
		pf.IsActive = *req.IsActive
	}

	updated, err := s.app.Store.Portfolios().Update(r.Context(), pf)
	if err != nil {
		s.logger.Error().Err(err).Int64("portfolio_id", id).Msg("Portfolio update failed")
		WriteError(w, http.StatusInternalServerError, "failed to update portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// handlePortfolioDelete handles DELETE /api/portfolios/{id}.
func (s *Server) handlePortfolioDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if _, _, ok := s.requirePortfolio(w, r, id); !ok {
		return
	}

	if err := s.app.Store.Portfolios().Delete(r.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		s.logger.Error().Err(err).Int64("portfolio_id", id).Msg("Portfolio delete failed")
		WriteError(w, http.StatusInternalServerError, "failed to delete portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
