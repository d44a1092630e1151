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

type PortfolioStore struct {
	db     *surrealdb.DB
	seq    *sequence
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, seq *sequence, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{db: db, seq: seq, logger: logger}
}

func (s *PortfolioStore) Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	id, err := s.seq.Next(ctx, "portfolio")
	if err != nil {
		return nil, err
	}

	cp := *p
	cp.ID = id

	sql := "UPSERT type::record('portfolio', $id) CONTENT $portfolio"
	vars := map[string]any{"id": id, "portfolio": &cp}
	if _, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return &cp, nil
}

func (s *PortfolioStore) Get(ctx context.Context, id int64) (*models.Portfolio, error) {
	p, err := surrealdb.Select[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID("portfolio", id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}
	if p == nil || p.ID == 0 {
		return nil, interfaces.ErrNotFound
	}
	return p, nil
}

func (s *PortfolioStore) ListByUser(ctx context.Context, userID int64) ([]*models.Portfolio, error) {
	sql := "SELECT * FROM portfolio WHERE user_id = $user_id ORDER BY id ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	var out []*models.Portfolio
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			out = append(out, &(*results)[0].Result[i])
		}
	}
	return out, nil
}

func (s *PortfolioStore) ListActive(ctx context.Context) ([]*models.Portfolio, error) {
	sql := "SELECT * FROM portfolio WHERE is_active = true ORDER BY id ASC"

	results, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list active portfolios: %w", err)
	}

	var out []*models.Portfolio
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			out = append(out, &(*results)[0].Result[i])
		}
	}
	return out, nil
}

func (s *PortfolioStore) Update(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	if _, err := s.Get(ctx, p.ID); err != nil {
		return nil, err
	}

	sql := "UPSERT type::record('portfolio', $id) CONTENT $portfolio"
	vars := map[string]any{"id": p.ID, "portfolio": p}
	if _, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	cp := *p
	return &cp, nil
}

func (s *PortfolioStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := surrealdb.Delete[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID("portfolio", id)); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}
