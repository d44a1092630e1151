package surrealdb

import (
	"context"
	"fmt"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type InvestmentStore struct {
	db     *surrealdb.DB
	seq    *sequence
	logger *common.Logger
}

func NewInvestmentStore(db *surrealdb.DB, seq *sequence, logger *common.Logger) *InvestmentStore {
	return &InvestmentStore{db: db, seq: seq, logger: logger}
}

func (s *InvestmentStore) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	id, err := s.seq.Next(ctx, "investment")
	if err != nil {
		return nil, err
	}

	cp := *inv
	cp.ID = id

	sql := "UPSERT type::record('investment', $id) CONTENT $investment"
	vars := map[string]any{"id": id, "investment": &cp}
	if _, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return &cp, nil
}

func (s *InvestmentStore) Get(ctx context.Context, id int64) (*models.Investment, error) {
	inv, err := surrealdb.Select[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select investment: %w", err)
	}
	if inv == nil || inv.ID == 0 {
		return nil, interfaces.ErrNotFound
	}
	return inv, nil
}

func (s *InvestmentStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Investment, error) {
	sql := "SELECT * FROM investment WHERE portfolio_id = $portfolio_id ORDER BY id ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	var out []*models.Investment
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			out = append(out, &(*results)[0].Result[i])
		}
	}
	return out, nil
}

func (s *InvestmentStore) Update(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	if _, err := s.Get(ctx, inv.ID); err != nil {
		return nil, err
	}

	sql := "UPSERT type::record('investment', $id) CONTENT $investment"
	vars := map[string]any{"id": inv.ID, "investment": inv}
	if _, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}
	cp := *inv
	return &cp, nil
}

func (s *InvestmentStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := surrealdb.Delete[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", id)); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}
