package signal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// auxColumns are per-row quantities the rules need but the output never carries.
// Previous-row values are read through row.prev instead of being materialized.
type auxColumns struct {
	priceChange types.Values
	volumeAvg   types.Values
	volumeRatio types.Values
}

func computeAux(series *types.IndicatorSeries, cfg Config) auxColumns {
	n := series.Len()
	closes := series.Closes()

	volumes := make([]float64, n)
	for i, bar := range series.Bars {
		volumes[i] = bar.Volume
	}

	aux := auxColumns{
		priceChange: PercentChange(closes, cfg.MomentumLookback),
		volumeAvg:   indicator.SimpleMovingAverage(volumes, cfg.VolumeWindow),
		volumeRatio: make(types.Values, n),
	}

	for i := range n {
		avg := aux.volumeAvg[i]
		if avg.IsNone() || avg.Unwrap() == 0 {
			continue
		}

		aux.volumeRatio[i] = optional.Some(volumes[i] / avg.Unwrap())
	}

	return aux
}

// PercentChange returns values[i]/values[i-periods] - 1, undefined for the first
// periods rows and wherever the base value is zero.
func PercentChange(values []float64, periods int) types.Values {
	out := make(types.Values, len(values))

	for i := periods; i < len(values); i++ {
		base := values[i-periods]
		if base == 0 {
			continue
		}

		out[i] = optional.Some(values[i]/base - 1)
	}

	return out
}

// row is the view every rule evaluates: the current row plus the one before it.
type row struct {
	series *types.IndicatorSeries
	aux    *auxColumns
	cfg    *Config
	i      int
}

func (r row) cur(col types.Column) optional.Option[float64] {
	return r.series.Value(col, r.i)
}

func (r row) prev(col types.Column) optional.Option[float64] {
	return r.series.Value(col, r.i-1)
}

func (r row) priceChange() optional.Option[float64] {
	return r.aux.priceChange[r.i]
}

func (r row) volumeRatio() optional.Option[float64] {
	return r.aux.volumeRatio[r.i]
}

// compare applies cmp when both operands are defined; an undefined operand makes it false.
func compare(a, b optional.Option[float64], cmp func(x, y float64) bool) bool {
	if a.IsNone() || b.IsNone() {
		return false
	}

	return cmp(a.Unwrap(), b.Unwrap())
}

func greater(x, y float64) bool        { return x > y }
func less(x, y float64) bool           { return x < y }
func greaterOrEqual(x, y float64) bool { return x >= y }
func lessOrEqual(x, y float64) bool    { return x <= y }

// crossedAbove reports a > b now while a <= b on the previous row.
func (r row) crossedAbove(a, b types.Column) bool {
	return compare(r.cur(a), r.cur(b), greater) && compare(r.prev(a), r.prev(b), lessOrEqual)
}

// crossedBelow reports a < b now while a >= b on the previous row.
func (r row) crossedBelow(a, b types.Column) bool {
	return compare(r.cur(a), r.cur(b), less) && compare(r.prev(a), r.prev(b), greaterOrEqual)
}

func (r row) closeRising() bool {
	return compare(r.cur(types.ColumnClose), r.prev(types.ColumnClose), greater)
}

func (r row) closeFalling() bool {
	return compare(r.cur(types.ColumnClose), r.prev(types.ColumnClose), less)
}
