package analysis

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// statsRows is how many of the newest window rows PeriodStats covers.
const statsRows = 20

// PeriodStats holds price, volume and signal figures over the newest rows of a window.
type PeriodStats struct {
	Rows          int                      `json:"rows"`
	AveragePrice  float64                  `json:"average_price"`
	HighestPrice  float64                  `json:"highest_price"`
	LowestPrice   float64                  `json:"lowest_price"`
	TotalVolume   float64                  `json:"total_volume"`
	AverageVolume float64                  `json:"average_volume"`
	RSIAverage    *float64                 `json:"rsi_average"`
	SignalCounts  map[types.SignalType]int `json:"signal_counts"`
}

// periodStats summarizes the last statsRows of rows. rows must not be empty.
func periodStats(series *types.ScoredSeries, rows []int) PeriodStats {
	rows = rows[max(len(rows)-statsRows, 0):]

	closes := make([]float64, 0, len(rows))
	rsis := make([]float64, 0, len(rows))
	stats := PeriodStats{
		Rows:         len(rows),
		HighestPrice: series.Bars[rows[0]].High,
		LowestPrice:  series.Bars[rows[0]].Low,
		SignalCounts: countSignals(series, rows),
	}

	for _, i := range rows {
		bar := series.Bars[i]
		closes = append(closes, bar.Close)
		stats.HighestPrice = max(stats.HighestPrice, bar.High)
		stats.LowestPrice = min(stats.LowestPrice, bar.Low)
		stats.TotalVolume += bar.Volume

		if rsi := series.Value(types.ColumnRSI, i); rsi.IsSome() {
			rsis = append(rsis, rsi.Unwrap())
		}
	}

	stats.AveragePrice = round(mean(closes))
	stats.AverageVolume = round(stats.TotalVolume / float64(len(rows)))

	if len(rsis) > 0 {
		avg := round(mean(rsis))
		stats.RSIAverage = &avg
	}

	return stats
}

// RowStats holds the derived per-row figures shown next to the indicator columns.
// Each is None where its inputs are undefined.
type RowStats struct {
	ChangePercent optional.Option[float64]
	VolumeRatio   optional.Option[float64]
	PriceVsSMA20  optional.Option[float64]
}

// RowStatsAt computes the derived figures of row i: close change % against the
// previous row, volume over its 20-row mean and close distance from SMA 20 in %.
func RowStatsAt(series *types.IndicatorSeries, i int) RowStats {
	stats := RowStats{
		ChangePercent: optional.None[float64](),
		VolumeRatio:   optional.None[float64](),
		PriceVsSMA20:  optional.None[float64](),
	}

	bar := series.Bars[i]

	if i > 0 && series.Bars[i-1].Close != 0 {
		prev := series.Bars[i-1].Close
		stats.ChangePercent = optional.Some(round((bar.Close - prev) / prev * 100))
	}

	if i+1 >= volumeWindow {
		volumes := make([]float64, 0, volumeWindow)
		for _, b := range series.Bars[i+1-volumeWindow : i+1] {
			volumes = append(volumes, b.Volume)
		}

		if avg := mean(volumes); avg > 0 {
			stats.VolumeRatio = optional.Some(round(bar.Volume / avg))
		}
	}

	if sma := series.Value(types.ColumnSMA20, i); sma.IsSome() && sma.Unwrap() != 0 {
		stats.PriceVsSMA20 = optional.Some(round((bar.Close - sma.Unwrap()) / sma.Unwrap() * 100))
	}

	return stats
}
