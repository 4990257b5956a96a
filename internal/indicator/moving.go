package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// SimpleMovingAverage returns the trailing mean over window rows, inclusive of
// the current row. The first window-1 rows are None.
func SimpleMovingAverage(values []float64, window int) types.Values {
	out := make(types.Values, len(values))

	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}

		out[i] = optional.Some(sum / float64(window))
	}

	return out
}

// RollingMean is SimpleMovingAverage over a column with undefined cells: a row
// is defined only when every cell in its window is defined.
func RollingMean(values types.Values, window int) types.Values {
	out := make(types.Values, len(values))
	defined := 0

	for i, v := range values {
		if v.IsSome() {
			defined++
		} else {
			defined = 0
		}

		if defined < window {
			continue
		}

		sum := 0.0
		for _, w := range values[i-window+1 : i+1] {
			sum += w.Unwrap()
		}

		out[i] = optional.Some(sum / float64(window))
	}

	return out
}

// smoothingFactor is alpha = 2/(span+1).
func smoothingFactor(span int) float64 {
	return 2.0 / float64(span+1)
}

// ExponentialMovingAverage is the recursive EMA seeded by the first value:
// ema[0] = x[0], ema[i] = x[i]*alpha + ema[i-1]*(1-alpha).
// Defined from the first row.
func ExponentialMovingAverage(values []float64, span int) types.Values {
	out := make(types.Values, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := smoothingFactor(span)
	ema := values[0]
	out[0] = optional.Some(ema)

	for i := 1; i < len(values); i++ {
		ema = values[i]*alpha + ema*(1-alpha)
		out[i] = optional.Some(ema)
	}

	return out
}

// AdjustedExponentialMovingAverage is the bias-corrected exponentially weighted
// mean, y[t] = sum((1-alpha)^k * x[t-k]) / sum((1-alpha)^k) for k in 0..t.
// Early rows weigh the few observations seen so far evenly instead of leaning
// on a seed value.
func AdjustedExponentialMovingAverage(values []float64, span int) types.Values {
	out := make(types.Values, len(values))
	decay := 1 - smoothingFactor(span)

	numerator := 0.0
	denominator := 0.0

	for i, v := range values {
		numerator = v + decay*numerator
		denominator = 1 + decay*denominator
		out[i] = optional.Some(numerator / denominator)
	}

	return out
}
