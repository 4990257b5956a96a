package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Engine evaluates every registered indicator over a price series.
// It holds no per-call state and is safe for concurrent use once built.
type Engine struct {
	registry IndicatorRegistry
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry IndicatorRegistry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// DefaultIndicators returns SMA_20, SMA_50, EMA_20, RSI(14) and MACD(12, 26, 9).
func DefaultIndicators() []Indicator {
	return []Indicator{
		NewMAWithPeriod(20),
		NewMAWithPeriod(50),
		NewEMAWithPeriod(20),
		NewRSI(),
		NewMACD(),
	}
}

// NewDefaultEngine creates an engine with DefaultIndicators registered.
func NewDefaultEngine() *Engine {
	registry := NewIndicatorRegistry()

	for _, ind := range DefaultIndicators() {
		// names of the default set are unique
		_ = registry.RegisterIndicator(ind)
	}

	return NewEngine(registry)
}

// Registry returns the engine's indicator registry.
func (e *Engine) Registry() IndicatorRegistry {
	return e.registry
}

// Lookback returns the largest lookback of the registered indicators, which is
// the minimum series length callers must supply.
func (e *Engine) Lookback() int {
	lookback := 0

	for _, ind := range e.indicators() {
		lookback = max(lookback, ind.Lookback())
	}

	return lookback
}

// Compute returns a new series over a copy of bars with one column per
// indicator output. Rows are never dropped or reordered.
func (e *Engine) Compute(symbol string, bars []types.PriceBar) *types.IndicatorSeries {
	series := types.NewIndicatorSeries(symbol, bars)

	for _, ind := range e.indicators() {
		for column, values := range ind.Compute(series) {
			series.Columns[column] = values
		}
	}

	return series
}

func (e *Engine) indicators() []Indicator {
	names := e.registry.ListIndicators()
	indicators := make([]Indicator, 0, len(names))

	for _, name := range names {
		ind, err := e.registry.GetIndicator(name)
		if err != nil {
			// removed concurrently
			continue
		}

		indicators = append(indicators, ind)
	}

	return indicators
}
