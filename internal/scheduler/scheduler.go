package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/config"
	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/service/report"
)

// Scheduler writes a full, unfiltered report snapshot to disk on a cron
// schedule so the day's closing report is always available.
type Scheduler struct {
	cron     *cron.Cron
	exporter *report.Exporter
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the business
// timezone.
func NewScheduler(cfg config.ReportingConfig, exporter *report.Exporter, loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.writeSnapshot)
	if err != nil {
		s.logger.Error("failed to schedule report snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) writeSnapshot() {
	s.logger.Info("generating report snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc, err := s.exporter.Export(ctx, models.ReportFilters{})
	if errors.Is(err, report.ErrNoRecords) {
		s.logger.Info("no records yet, skipping snapshot")
		return
	}
	if err != nil {
		s.logger.Error("failed to generate report snapshot", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		s.logger.Error("failed to create reports directory", zap.Error(err))
		return
	}

	path := filepath.Join(s.cfg.OutputDir, doc.Filename)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		s.logger.Error("failed to write report snapshot", zap.Error(err))
		return
	}

	s.logger.Info("report snapshot written", zap.String("path", path))
}
