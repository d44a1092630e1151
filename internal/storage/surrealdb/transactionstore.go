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

// TransactionStore persists the append-only transaction log. There is no
// update or delete: transactions are immutable events.
type TransactionStore struct {
	db     *surrealdb.DB
	seq    *sequence
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, seq *sequence, logger *common.Logger) *TransactionStore {
	return &TransactionStore{db: db, seq: seq, logger: logger}
}

func (s *TransactionStore) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	id, err := s.seq.Next(ctx, "transaction")
	if err != nil {
		return nil, err
	}

	cp := *tx
	cp.ID = id

	sql := "UPSERT type::record('transaction', $id) CONTENT $tx"
	vars := map[string]any{"id": id, "tx": &cp}
	if _, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &cp, nil
}

func (s *TransactionStore) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, err := surrealdb.Select[models.Transaction](ctx, s.db, surrealmodels.NewRecordID("transaction", id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select transaction: %w", err)
	}
	if tx == nil || tx.ID == 0 {
		return nil, interfaces.ErrNotFound
	}
	return tx, nil
}

func (s *TransactionStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE portfolio_id = $portfolio_id ORDER BY id ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var out []*models.Transaction
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			out = append(out, &(*results)[0].Result[i])
		}
	}
	return out, nil
}
