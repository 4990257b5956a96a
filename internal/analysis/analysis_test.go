package analysis

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// generatedBars returns count deterministic trading-day bars starting at testStart.
func generatedBars(count int) []types.PriceBar {
	config := mocks.DefaultConfig()
	config.StartDate = testStart
	config.Count = count

	return mocks.NewDataGenerator(7).Generate(config)
}

// fixedClock returns a clock one day after the last bar.
func fixedClock(bars []types.PriceBar) func() time.Time {
	return func() time.Time {
		return bars[len(bars)-1].Date.AddDate(0, 0, 1)
	}
}
