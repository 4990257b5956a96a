package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement.
// Indicators are pure: Compute reads the series and returns new columns aligned
// with its rows, using None for rows that are still warming up.
type Indicator interface {
	// Name returns the registry key of this indicator instance (e.g. "SMA_20")
	Name() string
	// Type returns the kind of indicator
	Type() types.IndicatorType
	// Columns returns the columns Compute produces
	Columns() []types.Column
	// Lookback returns how many rows are needed before the first value is defined
	Lookback() int
	// Compute derives the indicator columns from the series
	Compute(series *types.IndicatorSeries) map[types.Column]types.Values
	// Config reconfigures the indicator parameters
	Config(params ...any) error
}

// parsePeriod accepts an int or a whole float64 (YAML and JSON decode numbers as float64).
func parsePeriod(param any, name string) (int, error) {
	var period int

	switch p := param.(type) {
	case int:
		period = p
	case float64:
		period = int(p)
		if float64(period) != p {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid value for %s parameter, expected a whole number, got %v", name, p)
		}
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int or float", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}
