package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"go.uber.org/zap"
)

// Report is the result of one analysis run.
type Report struct {
	Symbol      string                `json:"symbol"`
	Provider    provider.ProviderType `json:"provider"`
	GeneratedAt time.Time             `json:"generated_at"`
	Summary     Summary               `json:"summary"`
	Series      *types.ScoredSeries   `json:"series"`
}

// LastSignal returns the label of the newest row.
func (r *Report) LastSignal() types.SignalType {
	return r.Series.Signals[r.Series.Len()-1]
}

// Service fetches a symbol from a provider and analyzes it. Every run is an
// independent snapshot; nothing is cached between runs.
type Service struct {
	provider provider.Provider
	analyzer *Analyzer
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a service. A nil metrics records nothing.
func NewService(marketProvider provider.Provider, analyzer *Analyzer, m *metrics.Metrics, log *logger.Logger) *Service {
	if analyzer == nil {
		analyzer = NewDefaultAnalyzer()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Service{
		provider: marketProvider,
		analyzer: analyzer,
		metrics:  m,
		logger:   log.Named("analysis"),
		now:      time.Now,
	}
}

// Run analyzes symbol and summarizes it over DefaultWindow.
func (s *Service) Run(ctx context.Context, symbol string) (*Report, error) {
	return s.RunWindow(ctx, symbol, DefaultWindow)
}

// RunWindow analyzes the full series of symbol and summarizes it over window.
// Provider failures are wrapped with ErrCodeMarketDataFetchFailed and never retried.
func (s *Service) RunWindow(ctx context.Context, symbol string, window Window) (*Report, error) {
	start := s.now()

	report, err := s.run(ctx, symbol, window)
	if err != nil {
		s.metrics.ObserveError(err, s.now().Sub(start))
		s.logger.Error("analysis failed",
			zap.String("symbol", symbol),
			zap.Int("code", int(errors.GetCode(err))),
			zap.Error(err),
		)

		return nil, err
	}

	s.metrics.ObserveAnalysis(report.Symbol, report.LastSignal(), s.now().Sub(start))
	s.logger.Info("analysis completed",
		zap.String("symbol", report.Symbol),
		zap.Int("rows", report.Series.Len()),
		zap.String("signal", string(report.LastSignal())),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	return report, nil
}

func (s *Service) run(ctx context.Context, symbol string, window Window) (*Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	if s.provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "market data provider is not configured")
	}

	bars, err := s.provider.FetchDaily(ctx, symbol)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s from %s", symbol, s.provider.Name())
	}

	s.logger.Debug("fetched bars", zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	series, err := s.analyzer.Analyze(symbol, bars)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(series, window)
	if err != nil {
		return nil, err
	}

	return &Report{
		Symbol:      symbol,
		Provider:    s.provider.Name(),
		GeneratedAt: s.now().UTC(),
		Summary:     summary,
		Series:      series,
	}, nil
}
