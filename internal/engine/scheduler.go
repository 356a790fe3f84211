package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs ingestion and reparse cycles on fixed intervals.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a Scheduler that runs engine jobs on a schedule.
func NewScheduler(
	eng *Engine,
	ingestionInterval time.Duration,
	reparseInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc(
		"@every "+ingestionInterval.String(),
		s.runIngestion,
	); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(
		"@every "+reparseInterval.String(),
		s.runReparse,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runIngestion() {
	s.log.Info("scheduled ingestion starting")
	if err := s.engine.RunIngestion(context.Background()); err != nil {
		s.log.Error("scheduled ingestion failed", "error", err)
	}
}

// runReparse refreshes the catalog first so the reparse sees new sets and
// cards. A failed reload keeps the current snapshot and the reparse still
// runs.
func (s *Scheduler) runReparse() {
	s.log.Info("scheduled reparse starting")
	if err := s.engine.ReloadCatalog(); err != nil {
		s.log.Error("catalog reload failed", "error", err)
	}
	if err := s.engine.RunReparse(context.Background()); err != nil {
		s.log.Error("scheduled reparse failed", "error", err)
	}
}
