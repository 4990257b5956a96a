package app

import (
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

// App wires the configured provider into the analysis service shared by the commands.
type App struct {
	Config   config.Config
	Logger   *logger.Logger
	Provider provider.Provider
	Metrics  *metrics.Metrics
	Service  *analysis.Service
	Exporter *writer.SeriesExporter
}

// New builds the application from cfg. Credentials go to the provider constructor only.
func New(cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	marketProvider, err := provider.NewProvider(cfg.ProviderConfig(), log)
	if err != nil {
		return nil, err
	}

	return NewWithProvider(cfg, marketProvider, log), nil
}

// NewWithProvider builds the application around an existing provider.
func NewWithProvider(cfg config.Config, marketProvider provider.Provider, log *logger.Logger) *App {
	if log == nil {
		log = logger.NewNopLogger()
	}

	m := metrics.New()
	analyzer := analysis.NewAnalyzer(indicator.NewDefaultEngine(), signal.NewScorer(cfg.Scorer))

	return &App{
		Config:   cfg,
		Logger:   log,
		Provider: marketProvider,
		Metrics:  m,
		Service:  analysis.NewService(marketProvider, analyzer, m, log),
		Exporter: writer.NewSeriesExporter(log),
	}
}
