// Package interfaces defines service and storage contracts for folio
package interfaces

import (
	"context"
	"errors"

	"github.com/foliolab/folio/internal/models"
)

// ErrNotFound is returned by all stores when the requested entity does not
// exist. Callers distinguish it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("not found")

// Store coordinates all entity stores for a single backend.
//
// Ids are assigned by the stores, monotonically increasing per entity type.
// The storage layer does not enforce ownership; the HTTP route layer guards
// cross-user access before delegating here.
type Store interface {
	Users() UserStore
	Portfolios() PortfolioStore
	Investments() InvestmentStore
	Transactions() TransactionStore
	Performance() PerformanceStore

	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// PortfolioStore manages portfolios and their denormalized totals.
type PortfolioStore interface {
	Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)
	Get(ctx context.Context, id int64) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Portfolio, error)
	ListActive(ctx context.Context) ([]*models.Portfolio, error)
	Update(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)
	Delete(ctx context.Context, id int64) error
}

// InvestmentStore manages investments within portfolios.
type InvestmentStore interface {
	Create(ctx context.Context, inv *models.Investment) (*models.Investment, error)
	Get(ctx context.Context, id int64) (*models.Investment, error)
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Investment, error)
	Update(ctx context.Context, inv *models.Investment) (*models.Investment, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionStore manages the append-only transaction log.
// Transactions are immutable: there is no update or delete.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Transaction, error)
}

// PerformanceStore manages append-only performance snapshots.
type PerformanceStore interface {
	Create(ctx context.Context, snap *models.PerformanceSnapshot) (*models.PerformanceSnapshot, error)
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.PerformanceSnapshot, error)
}
