package types

import "fmt"

// SignalType is the categorical per-row trading recommendation.
type SignalType string

const (
	// SignalTypeBuy is emitted when enough bullish rules agree.
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell is emitted when enough bearish rules agree and the row is not a BUY.
	SignalTypeSell SignalType = "SELL"
	// SignalTypeHold is the default for every other row, including warm-up rows.
	SignalTypeHold SignalType = "HOLD"
)

// AllSignalTypes lists the labels in display order.
var AllSignalTypes = []SignalType{SignalTypeBuy, SignalTypeSell, SignalTypeHold}

// ParseSignalType converts a label into a SignalType.
func ParseSignalType(s string) (SignalType, error) {
	switch SignalType(s) {
	case SignalTypeBuy, SignalTypeSell, SignalTypeHold:
		return SignalType(s), nil
	default:
		return "", fmt.Errorf("unknown signal type %q", s)
	}
}

// Evaluation records how a row's signal was reached.
type Evaluation struct {
	// BuyScore is the number of bullish rules that fired
	BuyScore int `json:"buy_score"`
	// SellScore is the number of bearish rules that fired
	SellScore int `json:"sell_score"`
	// Bullish holds the names of the bullish rules that fired, in rule order
	Bullish []string `json:"bullish,omitempty"`
	// Bearish holds the names of the bearish rules that fired, in rule order
	Bearish []string `json:"bearish,omitempty"`
}
