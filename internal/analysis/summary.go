package analysis

import (
	"math"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/shopspring/decimal"
)

// Window narrows a summary to the most recent part of the series.
type Window string

const (
	Window1M  Window = "1M"
	Window3M  Window = "3M"
	Window6M  Window = "6M"
	Window1Y  Window = "1Y"
	Window2Y  Window = "2Y"
	Window5Y  Window = "5Y"
	WindowAll Window = "ALL"
)

// DefaultWindow is used when no window is requested.
const DefaultWindow = Window6M

// AllWindows lists the windows in cycle order.
var AllWindows = []Window{Window1M, Window3M, Window6M, Window1Y, Window2Y, Window5Y, WindowAll}

var windowDays = map[Window]int{
	Window1M: 30,
	Window3M: 90,
	Window6M: 180,
	Window1Y: 365,
	Window2Y: 730,
	Window5Y: 1825,
}

// ParseWindow converts a label such as "6m" into a Window. Empty selects DefaultWindow.
func ParseWindow(s string) (Window, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultWindow, nil
	}

	w := Window(strings.ToUpper(strings.TrimSpace(s)))
	if w == WindowAll {
		return w, nil
	}

	if _, ok := windowDays[w]; !ok {
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unknown window %q (use 1M, 3M, 6M, 1Y, 2Y, 5Y or ALL)", s)
	}

	return w, nil
}

// Next returns the window after w in AllWindows, wrapping around.
func (w Window) Next() Window {
	for i, candidate := range AllWindows {
		if candidate == w {
			return AllWindows[(i+1)%len(AllWindows)]
		}
	}

	return DefaultWindow
}

// Start returns the first date included in w when the series ends at last.
func (w Window) Start(last time.Time) time.Time {
	days, ok := windowDays[w]
	if !ok {
		return time.Time{}
	}

	return last.AddDate(0, 0, -days)
}

// SignalStrength grades how far RSI sits from neutral.
type SignalStrength string

const (
	StrengthStrong   SignalStrength = "STRONG"
	StrengthModerate SignalStrength = "MODERATE"
	StrengthWeak     SignalStrength = "WEAK"
)

// ConfidenceLevel grades how many confidence factors agree.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

const (
	FactorRSIExtreme      = "RSI Extreme"
	FactorHighVolume      = "High Volume"
	FactorPriceDivergence = "Price Divergence"
)

const (
	tradingDaysPerYear = 252
	volumeWindow       = 20
	recentSignalsLimit = 10
)

// Confidence summarizes the factors backing the latest signal.
type Confidence struct {
	Factors []string        `json:"factors"`
	Score   float64         `json:"score"`
	Level   ConfidenceLevel `json:"level"`
}

// SignalEvent is one non-HOLD row with its close move since the previous listed event.
type SignalEvent struct {
	Date        time.Time        `json:"date"`
	Signal      types.SignalType `json:"signal"`
	Close       float64          `json:"close"`
	Performance float64          `json:"performance"`
}

// Summary holds the headline figures of a scored series over a window.
// Percentages are rounded to two decimals.
type Summary struct {
	Symbol        string                   `json:"symbol"`
	Window        Window                   `json:"window"`
	From          time.Time                `json:"from"`
	To            time.Time                `json:"to"`
	Rows          int                      `json:"rows"`
	CurrentClose  float64                  `json:"current_close"`
	Change        float64                  `json:"change"`
	ChangePercent float64                  `json:"change_percent"`
	CurrentVolume float64                  `json:"current_volume"`
	AverageVolume float64                  `json:"average_volume"`
	VolumeRatio   float64                  `json:"volume_ratio"`
	Volatility    float64                  `json:"volatility"`
	SharpeRatio   float64                  `json:"sharpe_ratio"`
	MaxDrawdown   float64                  `json:"max_drawdown"`
	PeriodReturn  float64                  `json:"period_return"`
	RSI           *float64                 `json:"rsi"`
	LastSignal    types.SignalType         `json:"last_signal"`
	Strength      SignalStrength           `json:"strength"`
	Confidence    Confidence               `json:"confidence"`
	SignalCounts  map[types.SignalType]int `json:"signal_counts"`
	RecentSignals []SignalEvent            `json:"recent_signals"`
	Period        PeriodStats              `json:"period"`
}

// Summarize computes the summary of series over window. The window always
// keeps the last row; an empty series yields an error.
func Summarize(series *types.ScoredSeries, window Window) (Summary, error) {
	if series == nil || series.Len() == 0 {
		return Summary{}, errors.New(errors.ErrCodeNoDataFound, "cannot summarize an empty series")
	}

	rows := windowRows(series, window)
	first, last := rows[0], rows[len(rows)-1]
	closes := make([]float64, len(rows))
	volumes := make([]float64, len(rows))

	for k, i := range rows {
		closes[k] = series.Bars[i].Close
		volumes[k] = series.Bars[i].Volume
	}

	summary := Summary{
		Symbol:        series.Symbol,
		Window:        window,
		From:          series.Bars[first].Date,
		To:            series.Bars[last].Date,
		Rows:          len(rows),
		CurrentClose:  series.Bars[last].Close,
		CurrentVolume: series.Bars[last].Volume,
		LastSignal:    series.Signals[last],
		SignalCounts:  countSignals(series, rows),
		RecentSignals: recentSignals(series, rows),
		Period:        periodStats(series, rows),
	}

	if len(closes) > 1 {
		prev := closes[len(closes)-2]
		summary.Change = round(summary.CurrentClose - prev)
		summary.ChangePercent = round((summary.CurrentClose - prev) / prev * 100)
	}

	avgVolume := mean(volumes[max(len(volumes)-volumeWindow, 0):])
	summary.AverageVolume = round(avgVolume)
	summary.VolumeRatio = 1

	if avgVolume > 0 {
		summary.VolumeRatio = round(summary.CurrentVolume / avgVolume)
	}

	returns := dailyReturns(closes)
	std := sampleStd(returns)
	summary.Volatility = round(std * math.Sqrt(tradingDaysPerYear) * 100)

	if std > 0 {
		summary.SharpeRatio = round(mean(returns) * tradingDaysPerYear / (std * math.Sqrt(tradingDaysPerYear)))
	}

	summary.MaxDrawdown = round(maxDrawdown(closes))
	summary.PeriodReturn = round((summary.CurrentClose - closes[0]) / closes[0] * 100)

	rsi := series.Value(types.ColumnRSI, last)
	summary.Strength = StrengthWeak

	if rsi.IsSome() {
		value := round(rsi.Unwrap())
		summary.RSI = &value
		summary.Strength = strength(rsi.Unwrap())
	}

	summary.Confidence = confidence(series, last, avgVolume)

	return summary, nil
}

// windowRows returns the row indexes of series inside window.
func windowRows(series *types.ScoredSeries, window Window) []int {
	lastDate := series.Bars[series.Len()-1].Date
	start := window.Start(lastDate)

	rows := make([]int, 0, series.Len())
	for i, bar := range series.Bars {
		if !bar.Date.Before(start) {
			rows = append(rows, i)
		}
	}

	return rows
}

func countSignals(series *types.ScoredSeries, rows []int) map[types.SignalType]int {
	counts := map[types.SignalType]int{
		types.SignalTypeBuy:  0,
		types.SignalTypeSell: 0,
		types.SignalTypeHold: 0,
	}

	for _, i := range rows {
		counts[series.Signals[i]]++
	}

	return counts
}

// recentSignals returns the last non-HOLD rows, oldest first. Performance is the
// close change against the previous listed event; the first event has 0.
func recentSignals(series *types.ScoredSeries, rows []int) []SignalEvent {
	events := make([]SignalEvent, 0, recentSignalsLimit)

	for _, i := range rows {
		if series.Signals[i] == types.SignalTypeHold {
			continue
		}

		events = append(events, SignalEvent{
			Date:   series.Bars[i].Date,
			Signal: series.Signals[i],
			Close:  series.Bars[i].Close,
		})
	}

	events = events[max(len(events)-recentSignalsLimit, 0):]

	for k := 1; k < len(events); k++ {
		prev := events[k-1].Close
		events[k].Performance = round((events[k].Close - prev) / prev * 100)
	}

	return events
}

func strength(rsi float64) SignalStrength {
	distance := math.Abs(rsi - 50)

	switch {
	case distance > 25:
		return StrengthStrong
	case distance > 15:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

func confidence(series *types.ScoredSeries, last int, avgVolume float64) Confidence {
	factors := make([]string, 0, 3)
	bar := series.Bars[last]

	if rsi := series.Value(types.ColumnRSI, last); rsi.IsSome() && math.Abs(rsi.Unwrap()-50) > 20 {
		factors = append(factors, FactorRSIExtreme)
	}

	if avgVolume > 0 && bar.Volume > avgVolume*1.5 {
		factors = append(factors, FactorHighVolume)
	}

	if sma := series.Value(types.ColumnSMA20, last); sma.IsSome() && math.Abs(bar.Close-sma.Unwrap()) > bar.Close*0.02 {
		factors = append(factors, FactorPriceDivergence)
	}

	score := decimal.NewFromInt(int64(len(factors))).Mul(decimal.RequireFromString("33.33"))
	level := ConfidenceLow

	switch {
	case score.GreaterThan(decimal.NewFromInt(66)):
		level = ConfidenceHigh
	case score.GreaterThan(decimal.NewFromInt(33)):
		level = ConfidenceMedium
	}

	return Confidence{
		Factors: factors,
		Score:   score.InexactFloat64(),
		Level:   level,
	}
}

// dailyReturns returns the close-to-close fractional changes.
func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}

	return returns
}

// maxDrawdown returns the deepest fall from a running peak, in percent (<= 0).
func maxDrawdown(closes []float64) float64 {
	peak := closes[0]
	worst := 0.0

	for _, c := range closes {
		peak = max(peak, c)
		worst = min(worst, (c/peak-1)*100)
	}

	return worst
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStd returns the standard deviation with one degree of freedom, 0 below two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	sum := 0.0

	for _, v := range values {
		sum += (v - m) * (v - m)
	}

	return math.Sqrt(sum / float64(len(values)-1))
}

func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
