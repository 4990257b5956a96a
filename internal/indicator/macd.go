package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// It produces the MACD line, its signal line and the histogram.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the registry key.
func (m *MACD) Name() string {
	return string(types.ColumnMACD)
}

// Type returns the kind of indicator.
func (m *MACD) Type() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Columns returns the MACD, signal line and histogram columns.
func (m *MACD) Columns() []types.Column {
	return []types.Column{types.ColumnMACD, types.ColumnSignalLine, types.ColumnMACDHistogram}
}

// Lookback is 1: the weighted averages are defined from the first row.
func (m *MACD) Lookback() int {
	return 1
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := parsePeriod(params[0], "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := parsePeriod(params[1], "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := parsePeriod(params[2], "signalPeriod")
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be smaller than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Compute derives the three MACD columns. Fast, slow and signal averages all use
// the bias-corrected exponential weighting.
func (m *MACD) Compute(series *types.IndicatorSeries) map[types.Column]types.Values {
	closes := series.Closes()
	fast := AdjustedExponentialMovingAverage(closes, m.fastPeriod)
	slow := AdjustedExponentialMovingAverage(closes, m.slowPeriod)

	macd := make([]float64, len(closes))
	macdLine := make(types.Values, len(closes))

	for i := range closes {
		macd[i] = fast[i].Unwrap() - slow[i].Unwrap()
		macdLine[i] = optional.Some(macd[i])
	}

	signalLine := AdjustedExponentialMovingAverage(macd, m.signalPeriod)
	histogram := make(types.Values, len(closes))

	for i := range closes {
		histogram[i] = optional.Some(macd[i] - signalLine[i].Unwrap())
	}

	return map[types.Column]types.Values{
		types.ColumnMACD:          macdLine,
		types.ColumnSignalLine:    signalLine,
		types.ColumnMACDHistogram: histogram,
	}
}
