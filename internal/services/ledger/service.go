// Package ledger records transactions and maintains portfolio aggregates.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// Typed validation errors, mapped to 400 at the route layer.
var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrNonPositive      = errors.New("transaction amount must be positive")
	ErrWrongPortfolio   = errors.New("investment does not belong to portfolio")
	ErrUnknownReference = errors.New("referenced investment not found")
)

// Service implements interfaces.LedgerService.
//
// Ordering contract: the transaction record is persisted first and
// unconditionally. Aggregate updates (investment current value, portfolio
// total value) follow best-effort; a failure there leaves the aggregates
// stale relative to the transaction log and is reported on the result
// rather than failing the call. There is no cross-write atomicity; the
// system assumes low concurrent write volume per portfolio.
type Service struct {
	store  interfaces.Store
	logger *common.Logger
}

// NewService creates a new ledger service.
func NewService(store interfaces.Store, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Record validates, persists, and applies a transaction.
func (s *Service) Record(ctx context.Context, tx *models.Transaction) (*models.TransactionResult, error) {
	if !models.ValidTransactionType(tx.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}
	if !tx.Amount.IsPositive() {
		return nil, ErrNonPositive
	}

	// The investment must exist and belong to the named portfolio before the
	// event is accepted into the log.
	inv, err := s.store.Investments().Get(ctx, tx.InvestmentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUnknownReference
		}
		return nil, fmt.Errorf("load investment: %w", err)
	}
	if inv.PortfolioID != tx.PortfolioID {
		return nil, ErrWrongPortfolio
	}

	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}

	stored, err := s.store.Transactions().Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}

	result := &models.TransactionResult{Transaction: stored}
	delta := stored.Delta()

	// Investment aggregate.
	newValue, clamped := applyDelta(inv.CurrentValue, delta)
	if clamped {
		result.ClampApplied = true
		s.logger.Warn().
			Int64("transaction_id", stored.ID).
			Int64("investment_id", inv.ID).
			Str("shortfall", inv.CurrentValue.Add(delta).Abs().String()).
			Msg("Over-withdrawal clamped investment value at zero")
	}
	inv.CurrentValue = newValue
	if _, err := s.store.Investments().Update(ctx, inv); err != nil {
		result.AggregatesStale = true
		s.logger.Error().Err(err).
			Int64("transaction_id", stored.ID).
			Int64("investment_id", inv.ID).
			Msg("Investment aggregate update failed; value is stale")
	}

	// Portfolio aggregate.
	pf, err := s.store.Portfolios().Get(ctx, stored.PortfolioID)
	if err != nil {
		result.AggregatesStale = true
		s.logger.Error().Err(err).
			Int64("transaction_id", stored.ID).
			Int64("portfolio_id", stored.PortfolioID).
			Msg("Portfolio load failed; total value is stale")
		return result, nil
	}

	newTotal, clamped := applyDelta(pf.TotalValue, delta)
	if clamped {
		result.ClampApplied = true
		s.logger.Warn().
			Int64("transaction_id", stored.ID).
			Int64("portfolio_id", pf.ID).
			Str("shortfall", pf.TotalValue.Add(delta).Abs().String()).
			Msg("Over-withdrawal clamped portfolio total at zero")
	}
	pf.TotalValue = newTotal
	if _, err := s.store.Portfolios().Update(ctx, pf); err != nil {
		result.AggregatesStale = true
		s.logger.Error().Err(err).
			Int64("transaction_id", stored.ID).
			Int64("portfolio_id", pf.ID).
			Msg("Portfolio aggregate update failed; total value is stale")
	}

	return result, nil
}

// applyDelta adds delta to value, flooring at zero. The second return is
// true when the floor was applied.
func applyDelta(value, delta decimal.Decimal) (decimal.Decimal, bool) {
	next := value.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, true
	}
	return next, false
}
