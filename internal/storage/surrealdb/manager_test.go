package surrealdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

var (
	surrealOnce sync.Once
	surrealAddr string
	surrealErr  error
)

// startSurrealDB starts a shared SurrealDB container for the test run.
// Gated behind FOLIO_TEST_DOCKER so unit test runs stay hermetic.
func startSurrealDB(t *testing.T) string {
	t.Helper()

	if os.Getenv("FOLIO_TEST_DOCKER") != "true" {
		t.Skip("Docker tests disabled (set FOLIO_TEST_DOCKER=true to enable)")
	}

	surrealOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--user", "root", "--pass", "root"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("8000/tcp"),
				wait.ForLog("Started web server"),
			).WithDeadline(60 * time.Second),
		}

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			surrealErr = fmt.Errorf("start SurrealDB container: %w", err)
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			container.Terminate(ctx)
			surrealErr = fmt.Errorf("get SurrealDB host: %w", err)
			return
		}

		mappedPort, err := container.MappedPort(ctx, "8000/tcp")
		if err != nil {
			container.Terminate(ctx)
			surrealErr = fmt.Errorf("get SurrealDB port: %w", err)
			return
		}

		surrealAddr = fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port())
	})

	if surrealErr != nil {
		t.Fatalf("SurrealDB container failed: %v", surrealErr)
	}
	return surrealAddr
}

// newTestManager connects to the shared container using a per-test database
// so tests do not see each other's records.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	addr := startSurrealDB(t)

	cfg := common.NewDefaultConfig()
	cfg.Storage.Backend = common.BackendSurreal
	cfg.Storage.Address = addr
	cfg.Storage.Database = fmt.Sprintf("test_%d", time.Now().UnixNano())

	mgr, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManager_UserRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	created, err := mgr.Users().Create(ctx, &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := mgr.Users().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	byName, err := mgr.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = mgr.Users().Get(ctx, 9999)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestManager_SequencesAreMonotonic(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		pf, err := mgr.Portfolios().Create(ctx, &models.Portfolio{
			UserID:    1,
			Name:      fmt.Sprintf("P%d", want),
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, want, pf.ID)
	}

	require.NoError(t, mgr.Portfolios().Delete(ctx, 3))
	pf, err := mgr.Portfolios().Create(ctx, &models.Portfolio{UserID: 1, Name: "P4", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, int64(4), pf.ID)
}

func TestManager_PortfolioAggregateRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	pf, err := mgr.Portfolios().Create(ctx, &models.Portfolio{
		UserID:     1,
		Name:       "Growth",
		TotalValue: decimal.RequireFromString("1000.25"),
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	pf.TotalValue = decimal.RequireFromString("1500.75")
	_, err = mgr.Portfolios().Update(ctx, pf)
	require.NoError(t, err)

	got, err := mgr.Portfolios().Get(ctx, pf.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalValue.Equal(decimal.RequireFromString("1500.75")),
		"total value = %s", got.TotalValue)

	active, err := mgr.Portfolios().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestManager_TransactionLogIsAppendOnly(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := mgr.Transactions().Create(ctx, &models.Transaction{
			PortfolioID:  1,
			InvestmentID: 1,
			Type:         models.TransactionDeposit,
			Amount:       decimal.NewFromInt(int64(10 + i)),
			Date:         time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	txs, err := mgr.Transactions().ListByPortfolio(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for i, tx := range txs {
		assert.Equal(t, int64(i+1), tx.ID)
	}

	other, err := mgr.Transactions().ListByPortfolio(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}
