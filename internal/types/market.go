package types

import "time"

// PriceBar is one daily OHLCV row delivered by a market data provider.
type PriceBar struct {
	Date   time.Time `json:"date" csv:"time"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume float64   `json:"volume" csv:"volume"`
}

// DateLayout is the calendar date layout used when bars are rendered or exported.
const DateLayout = "2006-01-02"
