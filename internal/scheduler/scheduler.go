package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/config"
	"github.com/mamadbah2/factory/internal/service/reporting"
	"github.com/mamadbah2/factory/internal/service/whatsapp"
)

const jobTimeout = 2 * time.Minute

// Exporter writes the daily spreadsheet export.
type Exporter interface {
	ExportDaily(ctx context.Context) (bool, error)
}

// Notifier sends the periodic summary.
type Notifier interface {
	SendSummary(ctx context.Context) error
}

// Scheduler runs the daily export and the weekly summary.
type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	notifier Notifier
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// NewScheduler creates a scheduler in the configured timezone. Either job
// dependency may be nil, in which case that job is not scheduled.
func NewScheduler(cfg config.ReportingConfig, exporter Exporter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.ExportSchedule, s.runExport); err != nil {
			return fmt.Errorf("failed to schedule daily export: %w", err)
		}
	}
	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.ReportSchedule, s.runReport); err != nil {
			return fmt.Errorf("failed to schedule weekly report: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	exported, err := s.exporter.ExportDaily(ctx)
	switch {
	case errors.Is(err, reporting.ErrExportDisabled):
		s.logger.Debug("daily export skipped: sheets not configured")
	case err != nil:
		s.logger.Error("daily export failed", zap.Error(err))
	case exported:
		s.logger.Info("daily export completed")
	}
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.notifier.SendSummary(ctx); err != nil {
		if errors.Is(err, whatsapp.ErrNoRecipient) {
			s.logger.Warn("weekly report skipped", zap.Error(err))
			return
		}
		s.logger.Error("failed to send weekly report", zap.Error(err))
		return
	}
	s.logger.Info("weekly report sent successfully")
}
