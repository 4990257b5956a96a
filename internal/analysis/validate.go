package analysis

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// MinBars is the shortest series the analyzer accepts. It equals the longest
// indicator window (SMA 50).
const MinBars = 50

// futureTolerance allows a bar dated "today" in any provider timezone.
const futureTolerance = 24 * time.Hour

// Validate checks the ingestion contract of a provider series: at least minBars
// rows, strictly increasing dates not beyond now, finite positive prices and
// non-negative volume. It never modifies bars.
func Validate(symbol string, bars []types.PriceBar, minBars int, now time.Time) error {
	if len(bars) < minBars {
		return errors.NewInsufficientDataErrorf(minBars, len(bars), symbol,
			"insufficient data for %s: need at least %d daily bars, got %d", symbol, minBars, len(bars))
	}

	for i, bar := range bars {
		if bar.Date.IsZero() {
			return errors.NewMalformedSeriesError(i, "date", symbol, "is missing")
		}

		if i > 0 {
			prev := bars[i-1].Date
			if bar.Date.Equal(prev) {
				return errors.NewMalformedSeriesErrorf(i, "date", symbol, "%s duplicates row %d", bar.Date.Format(types.DateLayout), i-1)
			}

			if bar.Date.Before(prev) {
				return errors.NewMalformedSeriesErrorf(i, "date", symbol, "%s is before row %d", bar.Date.Format(types.DateLayout), i-1)
			}
		}

		if !now.IsZero() && bar.Date.After(now.Add(futureTolerance)) {
			return errors.NewMalformedSeriesErrorf(i, "date", symbol, "%s is in the future", bar.Date.Format(types.DateLayout))
		}

		if err := validatePrices(symbol, i, bar); err != nil {
			return err
		}
	}

	return nil
}

func validatePrices(symbol string, i int, bar types.PriceBar) error {
	prices := []struct {
		field string
		value float64
	}{
		{"open", bar.Open},
		{"high", bar.High},
		{"low", bar.Low},
		{"close", bar.Close},
	}

	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return errors.NewMalformedSeriesError(i, p.field, symbol, "is not a finite number")
		}

		if p.value <= 0 {
			return errors.NewMalformedSeriesErrorf(i, p.field, symbol, "must be positive, got %v", p.value)
		}
	}

	if math.IsNaN(bar.Volume) || math.IsInf(bar.Volume, 0) {
		return errors.NewMalformedSeriesError(i, "volume", symbol, "is not a finite number")
	}

	if bar.Volume < 0 {
		return errors.NewMalformedSeriesErrorf(i, "volume", symbol, "must not be negative, got %v", bar.Volume)
	}

	return nil
}
