package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// sequence issues monotonically increasing ids per entity type using a
// counter record updated in a single atomic UPSERT, avoiding the
// find-max-and-increment race under concurrent writers.
type sequence struct {
	db *surrealdb.DB
}

func newSequence(db *surrealdb.DB) *sequence {
	return &sequence{db: db}
}

type counterRow struct {
	Value int64 `json:"value"`
}

// Next returns the next id for the named entity.
func (s *sequence) Next(ctx context.Context, entity string) (int64, error) {
	sql := "UPSERT type::record('counter', $entity) SET value += 1 RETURN AFTER"
	vars := map[string]any{"entity": entity}

	results, err := surrealdb.Query[[]counterRow](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", entity, err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, fmt.Errorf("empty result advancing %s sequence", entity)
	}
	return (*results)[0].Result[0].Value, nil
}
