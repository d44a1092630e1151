// Package surrealdb implements the document-store storage backend.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
)

// Manager implements interfaces.Store using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	users        *UserStore
	portfolios   *PortfolioStore
	investments  *InvestmentStore
	transactions *TransactionStore
	performance  *PerformanceStore
}

// NewManager connects to SurrealDB and prepares all entity stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables up front (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"user", "portfolio", "investment", "transaction", "performance", "counter"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	seq := newSequence(db)
	m.users = NewUserStore(db, seq, logger)
	m.portfolios = NewPortfolioStore(db, seq, logger)
	m.investments = NewInvestmentStore(db, seq, logger)
	m.transactions = NewTransactionStore(db, seq, logger)
	m.performance = NewPerformanceStore(db, seq, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage initialized")

	return m, nil
}

func (m *Manager) Users() interfaces.UserStore               { return m.users }
func (m *Manager) Portfolios() interfaces.PortfolioStore     { return m.portfolios }
func (m *Manager) Investments() interfaces.InvestmentStore   { return m.investments }
func (m *Manager) Transactions() interfaces.TransactionStore { return m.transactions }
func (m *Manager) Performance() interfaces.PerformanceStore  { return m.performance }

func (m *Manager) Close() error {
	return m.db.Close(context.Background())
}

// isNotFoundError reports whether the driver error indicates a missing record.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}
