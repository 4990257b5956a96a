package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// Runner performs one analysis. *analysis.Service implements it.
type Runner interface {
	RunWindow(ctx context.Context, symbol string, window analysis.Window) (*analysis.Report, error)
}

// Exporter writes a scored series. *writer.SeriesExporter implements it.
type Exporter interface {
	Export(series *types.ScoredSeries, path string, format writer.Format) (string, error)
}

// Config describes the scheduled job.
type Config struct {
	// Cron is a six-field expression (seconds first) or a descriptor such as @every 1h
	Cron   string
	Symbol string
	Window analysis.Window
	// ExportPath is overwritten on every tick; empty disables export
	ExportPath   string
	ExportFormat writer.Format
}

// Scheduler runs one snapshot analysis of a symbol per cron tick.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	entry    cron.EntryID
	runner   Runner
	exporter Exporter
	config   Config
	logger   *logger.Logger
}

// parser accepts a leading seconds field and descriptors such as @every.
var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a scheduler. The expression is validated here; the job is registered by Start.
func New(runner Runner, exporter Exporter, config Config, log *logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if config.Window == "" {
		config.Window = analysis.DefaultWindow
	}

	schedule, err := parser.Parse(config.Cron)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid cron expression %q", config.Cron)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithParser(parser)),
		schedule: schedule,
		runner:   runner,
		exporter: exporter,
		config:   config,
		logger:   log.Named("scheduler"),
	}, nil
}

// Start registers the job and starts the cron scheduler in its own goroutine.
// Ticks run with ctx and are skipped once it is done. Call Start once.
func (s *Scheduler) Start(ctx context.Context) {
	s.entry = s.cron.Schedule(s.schedule, cron.FuncJob(func() { s.tick(ctx) }))
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("cron", s.config.Cron),
		zap.String("symbol", s.config.Symbol),
		zap.Time("next", s.Next()),
	)
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// Next returns the time of the next tick, zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// RunNow executes one run immediately and returns its report.
func (s *Scheduler) RunNow(ctx context.Context) (*analysis.Report, error) {
	report, err := s.runner.RunWindow(ctx, s.config.Symbol, s.config.Window)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scheduled analysis",
		zap.String("symbol", report.Symbol),
		zap.String("signal", string(report.LastSignal())),
		zap.Float64("close", report.Summary.CurrentClose),
		zap.String("strength", string(report.Summary.Strength)),
	)

	if s.config.ExportPath == "" || s.exporter == nil {
		return report, nil
	}

	path, err := s.exporter.Export(report.Series, s.config.ExportPath, s.config.ExportFormat)
	if err != nil {
		return report, err
	}

	s.logger.Info("exported scored series", zap.String("path", path))

	return report, nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	if _, err := s.RunNow(ctx); err != nil {
		s.logger.Error("scheduled run failed",
			zap.String("symbol", s.config.Symbol),
			zap.Error(err),
		)
	}
}
