package analysis

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Analyzer validates a series, derives its indicator columns and labels every row.
// It is stateless between calls and safe for concurrent use.
type Analyzer struct {
	engine  *indicator.Engine
	scorer  *signal.Scorer
	minBars int
	now     func() time.Time
}

// NewAnalyzer creates an analyzer over engine and scorer. The minimum series
// length is the larger of MinBars and the engine lookback.
func NewAnalyzer(engine *indicator.Engine, scorer *signal.Scorer) *Analyzer {
	return &Analyzer{
		engine:  engine,
		scorer:  scorer,
		minBars: max(MinBars, engine.Lookback()),
		now:     time.Now,
	}
}

// NewDefaultAnalyzer creates an analyzer with the default indicators and thresholds.
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(indicator.NewDefaultEngine(), signal.NewDefaultScorer())
}

// WithClock replaces the clock used to reject future-dated bars.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now

	return a
}

// MinBars returns the shortest accepted series length.
func (a *Analyzer) MinBars() int {
	return a.minBars
}

// Analyze returns the fully scored series of bars, or an error and no series.
func (a *Analyzer) Analyze(symbol string, bars []types.PriceBar) (*types.ScoredSeries, error) {
	if err := Validate(symbol, bars, a.minBars, a.now()); err != nil {
		return nil, err
	}

	series := a.engine.Compute(symbol, bars)

	return a.scorer.Score(series), nil
}
