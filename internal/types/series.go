package types

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/moznion/go-optional"
)

// Values is a column of cells. A None cell means "no value yet" (warm-up).
type Values = []optional.Option[float64]

// IndicatorSeries is a column-oriented record set: the input bars plus one
// aligned column per derived indicator.
type IndicatorSeries struct {
	Symbol  string
	Bars    []PriceBar
	Columns map[Column]Values
}

// NewIndicatorSeries creates a series over a private copy of bars.
func NewIndicatorSeries(symbol string, bars []PriceBar) *IndicatorSeries {
	return &IndicatorSeries{
		Symbol:  symbol,
		Bars:    slices.Clone(bars),
		Columns: make(map[Column]Values),
	}
}

// Len returns the number of rows.
func (s *IndicatorSeries) Len() int {
	return len(s.Bars)
}

// Dates returns the row dates in order.
func (s *IndicatorSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, bar := range s.Bars {
		dates[i] = bar.Date
	}

	return dates
}

// Value returns the cell of col at row i. Price columns are always defined
// inside the series; out of range rows and unknown columns are None.
func (s *IndicatorSeries) Value(col Column, i int) optional.Option[float64] {
	if i < 0 || i >= len(s.Bars) {
		return optional.None[float64]()
	}

	if col.IsPriceColumn() {
		bar := s.Bars[i]

		switch col {
		case ColumnOpen:
			return optional.Some(bar.Open)
		case ColumnHigh:
			return optional.Some(bar.High)
		case ColumnLow:
			return optional.Some(bar.Low)
		case ColumnClose:
			return optional.Some(bar.Close)
		case ColumnVolume:
			return optional.Some(bar.Volume)
		}
	}

	values, ok := s.Columns[col]
	if !ok || i >= len(values) {
		return optional.None[float64]()
	}

	return values[i]
}

// Column returns the cells of col, resolving price columns from the bars.
func (s *IndicatorSeries) Column(col Column) Values {
	if col.IsPriceColumn() {
		values := make(Values, len(s.Bars))
		for i := range s.Bars {
			values[i] = s.Value(col, i)
		}

		return values
	}

	return s.Columns[col]
}

// ColumnNames returns the derived column names in sorted order.
func (s *IndicatorSeries) ColumnNames() []Column {
	return slices.Sorted(maps.Keys(s.Columns))
}

// Closes returns the close column as plain floats.
func (s *IndicatorSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Clone returns a deep copy that shares no backing arrays with s.
func (s *IndicatorSeries) Clone() *IndicatorSeries {
	columns := make(map[Column]Values, len(s.Columns))
	for name, values := range s.Columns {
		cloned := make(Values, len(values))
		for i, v := range values {
			if v.IsSome() {
				cloned[i] = optional.Some(v.Unwrap())
			}
		}

		columns[name] = cloned
	}

	return &IndicatorSeries{
		Symbol:  s.Symbol,
		Bars:    slices.Clone(s.Bars),
		Columns: columns,
	}
}

// ScoredSeries is an IndicatorSeries with one signal label per row.
type ScoredSeries struct {
	IndicatorSeries
	Signals     []SignalType
	Evaluations []Evaluation
}

// Row is one fully resolved row of a scored series, used by presentation adapters.
type Row struct {
	Date       time.Time
	Bar        PriceBar
	Values     map[Column]optional.Option[float64]
	Signal     SignalType
	Evaluation Evaluation
}

// Row resolves row i.
func (s *ScoredSeries) Row(i int) Row {
	values := make(map[Column]optional.Option[float64], len(s.Columns))
	for name := range s.Columns {
		values[name] = s.Value(name, i)
	}

	return Row{
		Date:       s.Bars[i].Date,
		Bar:        s.Bars[i],
		Values:     values,
		Signal:     s.Signals[i],
		Evaluation: s.Evaluations[i],
	}
}

// Tail returns the indexes of the last n rows.
func (s *ScoredSeries) Tail(n int) []int {
	start := max(s.Len()-n, 0)

	indexes := make([]int, 0, s.Len()-start)
	for i := start; i < s.Len(); i++ {
		indexes = append(indexes, i)
	}

	return indexes
}

// CountSignals returns how many rows carry each label.
func (s *ScoredSeries) CountSignals() map[SignalType]int {
	counts := map[SignalType]int{
		SignalTypeBuy:  0,
		SignalTypeSell: 0,
		SignalTypeHold: 0,
	}

	for _, sig := range s.Signals {
		counts[sig]++
	}

	return counts
}

type seriesJSON struct {
	Symbol      string            `json:"symbol"`
	Dates       []string          `json:"dates"`
	Columns     map[Column]Values `json:"columns"`
	Signals     []SignalType      `json:"signals,omitempty"`
	Evaluations []Evaluation      `json:"evaluations,omitempty"`
}

func (s *IndicatorSeries) toJSON() seriesJSON {
	dates := make([]string, len(s.Bars))
	for i, bar := range s.Bars {
		dates[i] = bar.Date.Format(DateLayout)
	}

	columns := make(map[Column]Values, len(s.Columns)+len(PriceColumns))
	for _, col := range PriceColumns {
		columns[col] = s.Column(col)
	}

	maps.Copy(columns, s.Columns)

	return seriesJSON{
		Symbol:  s.Symbol,
		Dates:   dates,
		Columns: columns,
	}
}

// MarshalJSON renders the series column by column with null for undefined cells.
func (s *IndicatorSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}

// MarshalJSON renders the scored series column by column, plus signals and evaluations.
func (s *ScoredSeries) MarshalJSON() ([]byte, error) {
	out := s.IndicatorSeries.toJSON()
	out.Signals = s.Signals
	out.Evaluations = s.Evaluations

	return json.Marshal(out)
}
