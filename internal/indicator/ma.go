package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation over the close column.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// NewMAWithPeriod creates a new MA indicator over the given window.
func NewMAWithPeriod(period int) Indicator {
	return &MA{
		period: period,
	}
}

// Name returns the registry key, which is also the column name (e.g. SMA_20).
func (m *MA) Name() string {
	return string(m.column())
}

// Type returns the kind of indicator.
func (m *MA) Type() types.IndicatorType {
	return types.IndicatorTypeSMA
}

func (m *MA) column() types.Column {
	return types.Column(fmt.Sprintf("SMA_%d", m.period))
}

// Columns returns the single SMA column.
func (m *MA) Columns() []types.Column {
	return []types.Column{m.column()}
}

// Lookback returns the window size.
func (m *MA) Lookback() int {
	return m.period
}

// Config expects parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params[0], "period")
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// Compute returns the trailing mean of close over the window.
func (m *MA) Compute(series *types.IndicatorSeries) map[types.Column]types.Values {
	return map[types.Column]types.Values{
		m.column(): SimpleMovingAverage(series.Closes(), m.period),
	}
}
