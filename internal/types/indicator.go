package types

// Column names a numeric column of a series. The OHLCV columns come straight
// from the bars; the rest are produced by the indicator engine.
type Column string

const (
	ColumnOpen   Column = "Open"
	ColumnHigh   Column = "High"
	ColumnLow    Column = "Low"
	ColumnClose  Column = "Close"
	ColumnVolume Column = "Volume"

	ColumnSMA20         Column = "SMA_20"
	ColumnSMA50         Column = "SMA_50"
	ColumnEMA20         Column = "EMA_20"
	ColumnRSI           Column = "RSI"
	ColumnMACD          Column = "MACD"
	ColumnSignalLine    Column = "Signal_Line"
	ColumnMACDHistogram Column = "MACD_Histogram"
)

// PriceColumns lists the columns resolved from PriceBar fields.
var PriceColumns = []Column{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// IsPriceColumn reports whether c is read from the bars rather than computed.
func (c Column) IsPriceColumn() bool {
	switch c {
	case ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume:
		return true
	default:
		return false
	}
}

// IndicatorType identifies a kind of technical indicator.
type IndicatorType string

const (
	IndicatorTypeSMA  IndicatorType = "sma"
	IndicatorTypeEMA  IndicatorType = "ema"
	IndicatorTypeRSI  IndicatorType = "rsi"
	IndicatorTypeMACD IndicatorType = "macd"
)
