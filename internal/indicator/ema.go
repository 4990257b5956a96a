package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation over the close column.
// The average is seeded with the first close, so it is defined from row 0; the
// earliest values lean heavily on that seed.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20, // Default period
	}
}

// NewEMAWithPeriod creates a new EMA indicator with the given span.
func NewEMAWithPeriod(period int) Indicator {
	return &EMA{
		period: period,
	}
}

// Name returns the registry key, which is also the column name (e.g. EMA_20).
func (e *EMA) Name() string {
	return string(e.column())
}

// Type returns the kind of indicator.
func (e *EMA) Type() types.IndicatorType {
	return types.IndicatorTypeEMA
}

func (e *EMA) column() types.Column {
	return types.Column(fmt.Sprintf("EMA_%d", e.period))
}

// Columns returns the single EMA column.
func (e *EMA) Columns() []types.Column {
	return []types.Column{e.column()}
}

// Lookback is 1: the first row already has a value.
func (e *EMA) Lookback() int {
	return 1
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params[0], "period")
	if err != nil {
		return err
	}

	e.period = period

	return nil
}

// Compute applies alpha = 2/(span+1) recursively, matching pandas ewm with adjust=False.
func (e *EMA) Compute(series *types.IndicatorSeries) map[types.Column]types.Values {
	return map[types.Column]types.Values{
		e.column(): ExponentialMovingAverage(series.Closes(), e.period),
	}
}
