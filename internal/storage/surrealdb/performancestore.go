package surrealdb

import (
	"context"
	"fmt"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// PerformanceStore persists append-only portfolio value snapshots.
type PerformanceStore struct {
	db     *surrealdb.DB
	seq    *sequence
	logger *common.Logger
}

func NewPerformanceStore(db *surrealdb.DB, seq *sequence, logger *common.Logger) *PerformanceStore {
	return &PerformanceStore{db: db, seq: seq, logger: logger}
}

func (s *PerformanceStore) Create(ctx context.Context, snap *models.PerformanceSnapshot) (*models.PerformanceSnapshot, error) {
	id, err := s.seq.Next(ctx, "performance")
	if err != nil {
		return nil, err
	}

	cp := *snap
	cp.ID = id

	sql := "UPSERT type::record('performance', $id) CONTENT $snapshot"
	vars := map[string]any{"id": id, "snapshot": &cp}
	if _, err := surrealdb.Query[[]models.PerformanceSnapshot](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to create performance snapshot: %w", err)
	}
	return &cp, nil
}

func (s *PerformanceStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.PerformanceSnapshot, error) {
	sql := "SELECT * FROM performance WHERE portfolio_id = $portfolio_id ORDER BY id ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.PerformanceSnapshot](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance snapshots: %w", err)
	}

	var out []*models.PerformanceSnapshot
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			out = append(out, &(*results)[0].Result[i])
		}
	}
	return out, nil
}
