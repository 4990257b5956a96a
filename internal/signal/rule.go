package signal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Rule is one named boolean predicate of a rule bank.
type Rule struct {
	Name string
	Eval func(r row) bool
}

const (
	RuleSMAGoldenCross         = "sma_golden_cross"
	RuleRSIOversoldRecovery    = "rsi_oversold_recovery"
	RulePriceAboveSMA20Rising  = "price_above_sma20_rising"
	RuleMACDBullishCrossover   = "macd_bullish_crossover"
	RuleVolumeConfirmation     = "volume_confirmation"
	RulePositiveMomentum       = "positive_momentum"
	RuleSMADeathCross          = "sma_death_cross"
	RuleRSIOverboughtDecline   = "rsi_overbought_decline"
	RulePriceBelowSMA20Falling = "price_below_sma20_falling"
	RuleMACDBearishCrossover   = "macd_bearish_crossover"
	RuleHighVolumeDecline      = "high_volume_decline"
	RuleNegativeMomentum       = "negative_momentum"
)

// BullishRules returns the bullish bank in evaluation order.
func BullishRules() []Rule {
	return []Rule{
		{
			Name: RuleSMAGoldenCross,
			Eval: func(r row) bool {
				return r.crossedAbove(types.ColumnSMA20, types.ColumnSMA50)
			},
		},
		{
			Name: RuleRSIOversoldRecovery,
			Eval: func(r row) bool {
				rsi := r.cur(types.ColumnRSI)

				return compare(rsi, optional.Some(r.cfg.RSIOversold), less) &&
					compare(rsi, r.prev(types.ColumnRSI), greater)
			},
		},
		{
			Name: RulePriceAboveSMA20Rising,
			Eval: func(r row) bool {
				return compare(r.cur(types.ColumnClose), r.cur(types.ColumnSMA20), greater) && r.closeRising()
			},
		},
		{
			Name: RuleMACDBullishCrossover,
			Eval: func(r row) bool {
				return r.crossedAbove(types.ColumnMACD, types.ColumnSignalLine)
			},
		},
		{
			Name: RuleVolumeConfirmation,
			Eval: func(r row) bool {
				return compare(r.volumeRatio(), optional.Some(r.cfg.VolumeRatio), greater)
			},
		},
		{
			Name: RulePositiveMomentum,
			Eval: func(r row) bool {
				return compare(r.priceChange(), optional.Some(r.cfg.Momentum), greater)
			},
		},
	}
}

// BearishRules returns the bearish bank in evaluation order.
func BearishRules() []Rule {
	return []Rule{
		{
			Name: RuleSMADeathCross,
			Eval: func(r row) bool {
				return r.crossedBelow(types.ColumnSMA20, types.ColumnSMA50)
			},
		},
		{
			Name: RuleRSIOverboughtDecline,
			Eval: func(r row) bool {
				rsi := r.cur(types.ColumnRSI)

				return compare(rsi, optional.Some(r.cfg.RSIOverbought), greater) &&
					compare(rsi, r.prev(types.ColumnRSI), less)
			},
		},
		{
			Name: RulePriceBelowSMA20Falling,
			Eval: func(r row) bool {
				return compare(r.cur(types.ColumnClose), r.cur(types.ColumnSMA20), less) && r.closeFalling()
			},
		},
		{
			Name: RuleMACDBearishCrossover,
			Eval: func(r row) bool {
				return r.crossedBelow(types.ColumnMACD, types.ColumnSignalLine)
			},
		},
		{
			Name: RuleHighVolumeDecline,
			Eval: func(r row) bool {
				return compare(r.volumeRatio(), optional.Some(r.cfg.VolumeRatio), greater) && r.closeFalling()
			},
		},
		{
			Name: RuleNegativeMomentum,
			Eval: func(r row) bool {
				return compare(r.priceChange(), optional.Some(-r.cfg.Momentum), less)
			},
		},
	}
}
