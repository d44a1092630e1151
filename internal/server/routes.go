package server

import (
	"net/http"
	"strings"

	"github.com/foliolab/folio/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Users & auth
	mux.HandleFunc("/api/users", s.handleUserCreate)
	mux.HandleFunc("/api/users/me", s.handleUserMe)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)

	// Portfolios and nested resources
	mux.HandleFunc("/api/portfolios", s.handlePortfolios)
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)

	// Investments addressed by id
	mux.HandleFunc("/api/investments/", s.routeInvestments)

	// Report downloads
	mux.HandleFunc("/api/reports/download/csv/", s.handleReportCSV)
	mux.HandleFunc("/api/reports/download/pdf/", s.handleReportPDF)
}

// routePortfolios dispatches /api/portfolios/{id}[/subresource].
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		s.handlePortfolios(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, ok := ParseID(w, parts[0])
	if !ok {
		return
	}

	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handlePortfolioByID(w, r, id)
	case "investments":
		s.handlePortfolioInvestments(w, r, id)
	case "transactions":
		s.handlePortfolioTransactions(w, r, id)
	case "performance":
		s.handlePortfolioPerformance(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeInvestments dispatches /api/investments/{id}.
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/investments/")
	if raw == "" || strings.Contains(raw, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	id, ok := ParseID(w, raw)
	if !ok {
		return
	}
	s.handleInvestmentByID(w, r, id)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
