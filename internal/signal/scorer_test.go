package signal

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/stretchr/testify/suite"
)

type ScorerTestSuite struct {
	suite.Suite
	scorer *Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerTestSuite))
}

func (suite *ScorerTestSuite) SetupTest() {
	suite.scorer = NewDefaultScorer()
}

// some builds a fully defined column.
func some(values ...float64) types.Values {
	out := make(types.Values, len(values))
	for i, v := range values {
		out[i] = optional.Some(v)
	}

	return out
}

// syntheticSeries builds a series with the given closes and injected columns.
func syntheticSeries(closes []float64, columns map[types.Column]types.Values) *types.IndicatorSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}

	series := types.NewIndicatorSeries("TEST", bars)
	for col, values := range columns {
		series.Columns[col] = values
	}

	return series
}

func (suite *ScorerTestSuite) TestDecide() {
	tests := []struct {
		name      string
		buyScore  int
		sellScore int
		expected  types.SignalType
	}{
		{name: "both zero", expected: types.SignalTypeHold},
		{name: "below both thresholds", buyScore: 1, sellScore: 1, expected: types.SignalTypeHold},
		{name: "buy only", buyScore: 2, sellScore: 0, expected: types.SignalTypeBuy},
		{name: "sell only", buyScore: 1, sellScore: 2, expected: types.SignalTypeSell},
		{name: "both at threshold", buyScore: 2, sellScore: 2, expected: types.SignalTypeBuy},
		{name: "sell far above buy", buyScore: 2, sellScore: 6, expected: types.SignalTypeBuy},
		{name: "both saturated", buyScore: 6, sellScore: 6, expected: types.SignalTypeBuy},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, suite.scorer.Decide(tc.buyScore, tc.sellScore))
		})
	}
}

func (suite *ScorerTestSuite) TestBuyTakesPrecedenceOverSell() {
	series := syntheticSeries([]float64{12, 9.5}, map[types.Column]types.Values{
		types.ColumnSMA20:      some(8, 10),
		types.ColumnSMA50:      some(9, 9),
		types.ColumnMACD:       some(0, 1),
		types.ColumnSignalLine: some(0.5, 0.5),
		types.ColumnRSI:        some(80, 70),
	})

	scored := suite.scorer.Score(series)
	eval := scored.Evaluations[1]

	suite.Equal([]string{RuleSMAGoldenCross, RuleMACDBullishCrossover}, eval.Bullish)
	suite.Equal([]string{RuleRSIOverboughtDecline, RulePriceBelowSMA20Falling}, eval.Bearish)
	suite.Equal(2, eval.BuyScore)
	suite.Equal(2, eval.SellScore)
	suite.Equal(types.SignalTypeBuy, scored.Signals[1])
}

func (suite *ScorerTestSuite) TestSellWhenOnlyBearish() {
	series := syntheticSeries([]float64{12, 9.5}, map[types.Column]types.Values{
		types.ColumnSMA20: some(10, 10),
		types.ColumnSMA50: some(9, 9),
		types.ColumnRSI:   some(80, 70),
	})

	scored := suite.scorer.Score(series)
	suite.Equal(0, scored.Evaluations[1].BuyScore)
	suite.Equal(types.SignalTypeSell, scored.Signals[1])
}

func (suite *ScorerTestSuite) TestHoldWhenBelowThresholds() {
	series := syntheticSeries([]float64{10, 11}, map[types.Column]types.Values{
		types.ColumnSMA20: some(10.5, 10.5),
		types.ColumnSMA50: some(10, 10),
	})

	scored := suite.scorer.Score(series)

	suite.Equal([]string{RulePriceAboveSMA20Rising}, scored.Evaluations[1].Bullish)
	suite.Equal(types.SignalTypeHold, scored.Signals[1])
}

func (suite *ScorerTestSuite) TestGoldenCrossFiresOnlyAtCrossingRow() {
	series := syntheticSeries([]float64{10, 10, 10, 10, 10}, map[types.Column]types.Values{
		types.ColumnSMA20: some(1, 2, 3, 4, 5),
		types.ColumnSMA50: some(3, 3, 3, 3, 3),
	})

	scored := suite.scorer.Score(series)

	for i, eval := range scored.Evaluations {
		if i == 3 {
			suite.Contains(eval.Bullish, RuleSMAGoldenCross)
		} else {
			suite.NotContainsf(eval.Bullish, RuleSMAGoldenCross, "row %d", i)
		}
	}
}

func (suite *ScorerTestSuite) TestDeathCrossFiresOnlyAtCrossingRow() {
	series := syntheticSeries([]float64{10, 10, 10, 10}, map[types.Column]types.Values{
		types.ColumnSMA20: some(5, 4, 3, 2),
		types.ColumnSMA50: some(3, 3, 3, 3),
	})

	scored := suite.scorer.Score(series)

	suite.NotContains(scored.Evaluations[2].Bearish, RuleSMADeathCross)
	suite.Contains(scored.Evaluations[3].Bearish, RuleSMADeathCross)
}

func (suite *ScorerTestSuite) TestUndefinedInputsEvaluateFalse() {
	none := optional.None[float64]()

	series := syntheticSeries([]float64{10, 12, 8}, map[types.Column]types.Values{
		types.ColumnSMA20:      {none, none, optional.Some(11.0)},
		types.ColumnSMA50:      {none, none, optional.Some(10.0)},
		types.ColumnRSI:        {none, optional.Some(20.0), none},
		types.ColumnMACD:       {none, optional.Some(1.0), optional.Some(2.0)},
		types.ColumnSignalLine: {none, none, optional.Some(1.5)},
	})

	scored := suite.scorer.Score(series)

	// row 0 has no previous row
	suite.Equal(types.Evaluation{}, scored.Evaluations[0])
	suite.Equal(types.SignalTypeHold, scored.Signals[0])

	// golden cross and MACD cross need a defined previous row
	suite.NotContains(scored.Evaluations[2].Bullish, RuleSMAGoldenCross)
	suite.NotContains(scored.Evaluations[2].Bullish, RuleMACDBullishCrossover)
	// RSI undefined now
	suite.NotContains(scored.Evaluations[2].Bullish, RuleRSIOversoldRecovery)
	// close < SMA_20 and falling is fully defined
	suite.Contains(scored.Evaluations[2].Bearish, RulePriceBelowSMA20Falling)
}

func (suite *ScorerTestSuite) TestRSIOversoldRecovery() {
	series := syntheticSeries([]float64{10, 10, 10}, map[types.Column]types.Values{
		types.ColumnRSI: some(20, 30, 40),
	})

	scored := suite.scorer.Score(series)

	suite.Contains(scored.Evaluations[1].Bullish, RuleRSIOversoldRecovery)
	suite.NotContains(scored.Evaluations[2].Bullish, RuleRSIOversoldRecovery)
}

func (suite *ScorerTestSuite) TestMomentumRules() {
	closes := []float64{100, 100, 100, 100, 100, 103, 100, 100, 100, 100, 97}
	scored := suite.scorer.Score(syntheticSeries(closes, nil))

	for i := range 5 {
		suite.Empty(scored.Evaluations[i].Bullish)
		suite.Empty(scored.Evaluations[i].Bearish)
	}

	suite.Contains(scored.Evaluations[5].Bullish, RulePositiveMomentum)
	// 97/103 - 1 is about -5.8%
	suite.Contains(scored.Evaluations[10].Bearish, RuleNegativeMomentum)
	suite.NotContains(scored.Evaluations[9].Bearish, RuleNegativeMomentum)
}

func (suite *ScorerTestSuite) TestScoreDoesNotMutateInput() {
	series := syntheticSeries([]float64{10, 11}, map[types.Column]types.Values{
		types.ColumnSMA20: some(10.5, 10.5),
	})

	scored := suite.scorer.Score(series)
	scored.Columns[types.ColumnSMA20][0] = optional.Some(-1.0)
	scored.Bars[0].Close = -1

	suite.Equal(optional.Some(10.5), series.Value(types.ColumnSMA20, 0))
	suite.Equal(10.0, series.Bars[0].Close)
	suite.NotContains(scored.Columns, types.Column("Volume_Ratio"))
}

func (suite *ScorerTestSuite) TestCustomThresholds() {
	scorer := NewScorer(Config{BuyThreshold: 1})
	series := syntheticSeries([]float64{10, 11}, map[types.Column]types.Values{
		types.ColumnSMA20: some(10.5, 10.5),
	})

	scored := scorer.Score(series)
	suite.Equal(types.SignalTypeBuy, scored.Signals[1])
	suite.Equal(2, scorer.Config().SellThreshold)
}

// crashSeries rises for 30 rows, goes flat, then drops 10% on double volume at row 50.
func crashSeries() []types.PriceBar {
	const volume = 1_000_000.0

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, 60)

	for i := range bars {
		var closePrice float64

		switch {
		case i < 30:
			closePrice = 100 + 2*float64(i)
		case i < 50:
			closePrice = 158
		default:
			closePrice = 158 * 0.9
		}

		v := volume
		if i == 50 {
			v = 2 * volume
		}

		bars[i] = types.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   closePrice,
			High:   closePrice + 1,
			Low:    closePrice - 1,
			Close:  closePrice,
			Volume: v,
		}
	}

	return bars
}

func (suite *ScorerTestSuite) TestCrashScenario() {
	series := indicator.NewDefaultEngine().Compute("TEST", crashSeries())
	scored := suite.scorer.Score(series)

	suite.Equal(60, scored.Len())
	suite.Equal(types.SignalTypeSell, scored.Signals[50])

	eval := scored.Evaluations[50]
	suite.Contains(eval.Bearish, RulePriceBelowSMA20Falling)
	suite.Contains(eval.Bearish, RuleHighVolumeDecline)
	suite.Contains(eval.Bearish, RuleNegativeMomentum)
	suite.Equal([]string{RuleVolumeConfirmation}, eval.Bullish)

	for i, sig := range scored.Signals {
		if i == 50 {
			continue
		}

		suite.NotEqualf(types.SignalTypeSell, sig, "row %d", i)
	}
}

func (suite *ScorerTestSuite) TestDeterministic() {
	series := indicator.NewDefaultEngine().Compute("TEST", crashSeries())

	first := suite.scorer.Score(series)
	second := suite.scorer.Score(series)

	suite.Equal(first.Signals, second.Signals)
	suite.Equal(first.Evaluations, second.Evaluations)
}

func (suite *ScorerTestSuite) TestNoLookahead() {
	const prefix = 120

	engine := indicator.NewDefaultEngine()
	config := mocks.DefaultConfig()
	config.Count = 200

	for _, seed := range []int64{1, 7, 42, 99} {
		bars := mocks.NewDataGenerator(seed).Generate(config)

		full := suite.scorer.Score(engine.Compute("TEST", bars))
		truncated := suite.scorer.Score(engine.Compute("TEST", bars[:prefix]))

		suite.Equal(prefix, truncated.Len())

		for i := 0; i < prefix; i++ {
			suite.Equalf(full.Signals[i], truncated.Signals[i], "seed %d row %d", seed, i)
			suite.Equalf(full.Evaluations[i], truncated.Evaluations[i], "seed %d row %d", seed, i)
		}
	}
}

func (suite *ScorerTestSuite) TestNegativeLookbackFallsBackToDefault() {
	scorer := NewScorer(Config{MomentumLookback: -1, VolumeWindow: -1})
	suite.Equal(5, scorer.Config().MomentumLookback)
	suite.Equal(20, scorer.Config().VolumeWindow)

	series := indicator.NewDefaultEngine().Compute("TEST", crashSeries())
	suite.NotPanics(func() {
		scored := scorer.Score(series)
		suite.Equal(series.Len(), scored.Len())
	})
}
