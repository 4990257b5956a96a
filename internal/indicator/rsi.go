package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
//
// Average gain and loss are plain rolling means over the period, not Wilder's
// recursive smoothing. The signal thresholds downstream are tuned against this
// formula.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the registry key.
func (r *RSI) Name() string {
	return string(types.ColumnRSI)
}

// Type returns the kind of indicator.
func (r *RSI) Type() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Columns returns the single RSI column.
func (r *RSI) Columns() []types.Column {
	return []types.Column{types.ColumnRSI}
}

// Lookback is period+1 rows: period deltas need one extra close.
func (r *RSI) Lookback() int {
	return r.period + 1
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params[0], "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Compute returns RSI for every row. The first period rows are None.
func (r *RSI) Compute(series *types.IndicatorSeries) map[types.Column]types.Values {
	return map[types.Column]types.Values{
		types.ColumnRSI: RelativeStrengthIndex(series.Closes(), r.period),
	}
}

// RelativeStrengthIndex computes RSI = 100 - 100/(1+avgGain/avgLoss) using
// rolling means of gains and losses. A window without losses yields 100.
func RelativeStrengthIndex(closes []float64, period int) types.Values {
	gains := make(types.Values, len(closes))
	losses := make(types.Values, len(closes))

	// delta is undefined at row 0
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gains[i] = optional.Some(max(change, 0))
		losses[i] = optional.Some(max(-change, 0))
	}

	avgGains := RollingMean(gains, period)
	avgLosses := RollingMean(losses, period)

	out := make(types.Values, len(closes))

	for i := range closes {
		if avgGains[i].IsNone() || avgLosses[i].IsNone() {
			continue
		}

		avgGain := avgGains[i].Unwrap()
		avgLoss := avgLosses[i].Unwrap()

		if avgLoss == 0 {
			out[i] = optional.Some(100.0)

			continue
		}

		rs := avgGain / avgLoss
		out[i] = optional.Some(100 - (100 / (1 + rs)))
	}

	return out
}
