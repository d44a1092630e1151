package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// snapshotScheduler appends a performance snapshot of every active
// portfolio's total value on a cron schedule. Snapshots are append-only;
// the job never mutates existing history.
type snapshotScheduler struct {
	cron   *cron.Cron
	store  interfaces.Store
	logger *common.Logger
}

func newSnapshotScheduler(schedule string, store interfaces.Store, logger *common.Logger) (*snapshotScheduler, error) {
	s := &snapshotScheduler{
		cron:   cron.New(),
		store:  store,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *snapshotScheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Performance snapshot scheduler started")
}

func (s *snapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *snapshotScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	portfolios, err := s.store.Portfolios().ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Snapshot job failed to list portfolios")
		return
	}

	now := time.Now().UTC()
	count := 0
	for _, pf := range portfolios {
		snap := &models.PerformanceSnapshot{
			PortfolioID: pf.ID,
			Date:        now,
			TotalValue:  pf.TotalValue,
		}
		if _, err := s.store.Performance().Create(ctx, snap); err != nil {
			s.logger.Error().Err(err).Int64("portfolio_id", pf.ID).Msg("Snapshot write failed")
			continue
		}
		count++
	}

	s.logger.Info().Int("portfolios", count).Msg("Performance snapshots recorded")
}
