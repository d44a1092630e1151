// Package app wires configuration, storage, and services into a runnable core.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/services/ledger"
	"github.com/foliolab/folio/internal/services/report"
	"github.com/foliolab/folio/internal/storage"
)

// App holds all initialized services and storage. It is the shared core
// behind cmd/folio-server and the HTTP handlers.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.Store
	Ledger      interfaces.LedgerService
	Reports     interfaces.ReportService
	StartupTime time.Time

	snapshotScheduler *snapshotScheduler
}

// NewApp initializes configuration, logging, storage, and services.
// configPath may be empty, in which case FOLIO_CONFIG and the default
// location are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = "config/folio.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := storage.NewStore(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Ledger:      ledger.NewService(store, logger),
		Reports:     report.NewService(store, logger),
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartSnapshotScheduler launches the daily performance snapshot job.
func (a *App) StartSnapshotScheduler() error {
	if !a.Config.Snapshot.Enabled {
		a.Logger.Info().Msg("Performance snapshot scheduler disabled")
		return nil
	}

	sched, err := newSnapshotScheduler(a.Config.Snapshot.Schedule, a.Store, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to start snapshot scheduler: %w", err)
	}
	a.snapshotScheduler = sched
	sched.Start()
	return nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.snapshotScheduler != nil {
		a.snapshotScheduler.Stop()
		a.snapshotScheduler = nil
	}
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
