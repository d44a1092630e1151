package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/models"
	"github.com/foliolab/folio/internal/storage/memory"
)

func newTestLedger(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := common.NewSilentLogger()
	return NewService(store, logger), store
}

// seedPortfolio creates a portfolio with one investment at the given cost
// basis and current value, and sets the portfolio total to match.
func seedPortfolio(t *testing.T, store *memory.Store, amount, currentValue string) (*models.Portfolio, *models.Investment) {
	t.Helper()
	ctx := context.Background()

	pf, err := store.Portfolios().Create(ctx, &models.Portfolio{
		UserID:     1,
		Name:       "Growth",
		TotalValue: decimal.RequireFromString(currentValue),
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	inv, err := store.Investments().Create(ctx, &models.Investment{
		PortfolioID:  pf.ID,
		Name:         "Index Fund",
		Type:         "etf",
		RiskLevel:    "medium",
		Amount:       decimal.RequireFromString(amount),
		CurrentValue: decimal.RequireFromString(currentValue),
		PurchaseDate: time.Now().UTC(),
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	return pf, inv
}

func TestRecord_PurchaseIncreasesAggregates(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "1000", "1000")
	ctx := context.Background()

	result, err := svc.Record(ctx, &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionPurchase,
		Amount:       decimal.RequireFromString("250"),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.False(t, result.ClampApplied)
	assert.False(t, result.AggregatesStale)

	gotInv, err := store.Investments().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, gotInv.CurrentValue.Equal(decimal.RequireFromString("1250")),
		"current value = %s", gotInv.CurrentValue)

	gotPf, err := store.Portfolios().Get(ctx, pf.ID)
	require.NoError(t, err)
	assert.True(t, gotPf.TotalValue.Equal(decimal.RequireFromString("1250")),
		"total value = %s", gotPf.TotalValue)
}

func TestRecord_DepositIncreasesAggregates(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "500", "500")
	ctx := context.Background()

	_, err := svc.Record(ctx, &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionDeposit,
		Amount:       decimal.RequireFromString("100.50"),
	})
	require.NoError(t, err)

	gotInv, err := store.Investments().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, gotInv.CurrentValue.Equal(decimal.RequireFromString("600.50")))
}

func TestRecord_SaleDecreasesAggregates(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "1000", "1000")
	ctx := context.Background()

	result, err := svc.Record(ctx, &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionSale,
		Amount:       decimal.RequireFromString("400"),
	})
	require.NoError(t, err)
	assert.False(t, result.ClampApplied)

	gotInv, err := store.Investments().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, gotInv.CurrentValue.Equal(decimal.RequireFromString("600")))

	gotPf, err := store.Portfolios().Get(ctx, pf.ID)
	require.NoError(t, err)
	assert.True(t, gotPf.TotalValue.Equal(decimal.RequireFromString("600")))
}

func TestRecord_OverWithdrawalClampsAtZero(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "1000", "1000")
	ctx := context.Background()

	result, err := svc.Record(ctx, &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionSale,
		Amount:       decimal.RequireFromString("1500"),
	})
	require.NoError(t, err)
	assert.True(t, result.ClampApplied, "expected clamp to be reported")

	gotInv, err := store.Investments().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, gotInv.CurrentValue.IsZero(), "current value = %s, want 0", gotInv.CurrentValue)

	gotPf, err := store.Portfolios().Get(ctx, pf.ID)
	require.NoError(t, err)
	assert.True(t, gotPf.TotalValue.IsZero(), "total value = %s, want 0", gotPf.TotalValue)
}

func TestRecord_TransactionPersistedBeforeAggregates(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "1000", "1000")
	ctx := context.Background()

	result, err := svc.Record(ctx, &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionWithdrawal,
		Amount:       decimal.RequireFromString("9999"),
	})
	require.NoError(t, err)

	// Even an over-withdrawal lands in the log unchanged.
	stored, err := store.Transactions().Get(ctx, result.Transaction.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("9999")))
	assert.Equal(t, models.TransactionWithdrawal, stored.Type)
}

func TestRecord_DefaultsDateToNow(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "100", "100")

	before := time.Now().UTC()
	result, err := svc.Record(context.Background(), &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionDeposit,
		Amount:       decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	assert.False(t, result.Transaction.Date.Before(before))
	assert.False(t, result.Transaction.Date.After(time.Now().UTC()))
}

func TestRecord_RejectsInvalidType(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "100", "100")

	_, err := svc.Record(context.Background(), &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: inv.ID,
		Type:         "transfer",
		Amount:       decimal.RequireFromString("10"),
	})
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestRecord_RejectsNonPositiveAmount(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, inv := seedPortfolio(t, store, "100", "100")

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.Record(context.Background(), &models.Transaction{
			PortfolioID:  pf.ID,
			InvestmentID: inv.ID,
			Type:         models.TransactionPurchase,
			Amount:       decimal.RequireFromString(amount),
		})
		require.ErrorIs(t, err, ErrNonPositive, "amount %s", amount)
	}
}

func TestRecord_RejectsUnknownInvestment(t *testing.T) {
	svc, store := newTestLedger(t)
	pf, _ := seedPortfolio(t, store, "100", "100")

	_, err := svc.Record(context.Background(), &models.Transaction{
		PortfolioID:  pf.ID,
		InvestmentID: 9999,
		Type:         models.TransactionPurchase,
		Amount:       decimal.RequireFromString("10"),
	})
	require.ErrorIs(t, err, ErrUnknownReference)
}

func TestRecord_RejectsCrossPortfolioInvestment(t *testing.T) {
	svc, store := newTestLedger(t)
	_, inv := seedPortfolio(t, store, "100", "100")
	other, _ := seedPortfolio(t, store, "200", "200")

	_, err := svc.Record(context.Background(), &models.Transaction{
		PortfolioID:  other.ID,
		InvestmentID: inv.ID,
		Type:         models.TransactionPurchase,
		Amount:       decimal.RequireFromString("10"),
	})
	require.ErrorIs(t, err, ErrWrongPortfolio)
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		delta   string
		want    string
		clamped bool
	}{
		{"positive delta", "100", "50", "150", false},
		{"negative within balance", "100", "-60", "40", false},
		{"exact zero", "100", "-100", "0", false},
		{"clamped", "100", "-150", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := applyDelta(decimal.RequireFromString(tt.value), decimal.RequireFromString(tt.delta))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}
