package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.engine = NewDefaultEngine()
}

func (suite *EngineTestSuite) TestDefaultRegistration() {
	suite.Equal([]string{"SMA_20", "SMA_50", "EMA_20", "RSI", "MACD"}, suite.engine.Registry().ListIndicators())
}

func (suite *EngineTestSuite) TestLookback() {
	suite.Equal(50, suite.engine.Lookback())
}

func (suite *EngineTestSuite) TestComputeProducesAllColumns() {
	bars := closeBars(linearCloses(60, 100, 1)...)
	series := suite.engine.Compute("TEST", bars)

	suite.Equal("TEST", series.Symbol)
	suite.Equal(60, series.Len())
	suite.Equal([]types.Column{
		types.ColumnEMA20,
		types.ColumnMACD,
		types.ColumnMACDHistogram,
		types.ColumnRSI,
		types.ColumnSMA20,
		types.ColumnSMA50,
		types.ColumnSignalLine,
	}, series.ColumnNames())

	for _, col := range series.ColumnNames() {
		suite.Lenf(series.Columns[col], 60, "column %s", col)
	}
}

func (suite *EngineTestSuite) TestComputeDoesNotMutateInput() {
	bars := closeBars(linearCloses(60, 100, 1)...)
	series := suite.engine.Compute("TEST", bars)

	series.Bars[0].Close = -1
	suite.Equal(100.0, bars[0].Close)
}

func (suite *EngineTestSuite) TestWarmUpBoundaries() {
	series := suite.engine.Compute("TEST", closeBars(linearCloses(60, 100, 1)...))

	suite.True(series.Value(types.ColumnSMA20, 18).IsNone())
	suite.True(series.Value(types.ColumnSMA20, 19).IsSome())
	suite.True(series.Value(types.ColumnSMA50, 48).IsNone())
	suite.True(series.Value(types.ColumnSMA50, 49).IsSome())
	suite.True(series.Value(types.ColumnRSI, 13).IsNone())
	suite.True(series.Value(types.ColumnRSI, 14).IsSome())
	suite.True(series.Value(types.ColumnEMA20, 0).IsSome())
	suite.True(series.Value(types.ColumnMACD, 0).IsSome())
}

func (suite *EngineTestSuite) TestNoLookahead() {
	closes := []float64{}
	for i := range 80 {
		closes = append(closes, 100+float64(i%7)*1.5-float64(i%3))
	}

	full := suite.engine.Compute("TEST", closeBars(closes...))
	prefix := suite.engine.Compute("TEST", closeBars(closes[:60]...))

	for _, col := range prefix.ColumnNames() {
		for i := range 60 {
			a := prefix.Value(col, i)
			b := full.Value(col, i)

			suite.Equalf(a.IsSome(), b.IsSome(), "column %s row %d", col, i)

			if a.IsSome() {
				suite.InDeltaf(a.Unwrap(), b.Unwrap(), 1e-9, "column %s row %d", col, i)
			}
		}
	}
}

func (suite *EngineTestSuite) TestDeterministic() {
	bars := closeBars(linearCloses(55, 10, 0.25)...)

	first := suite.engine.Compute("TEST", bars)
	second := suite.engine.Compute("TEST", bars)

	suite.Equal(first.Columns, second.Columns)
}

func (suite *EngineTestSuite) TestCustomRegistry() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(NewMAWithPeriod(5)))

	engine := NewEngine(registry)
	suite.Equal(5, engine.Lookback())

	series := engine.Compute("TEST", closeBars(linearCloses(10, 1, 1)...))
	suite.Equal([]types.Column{"SMA_5"}, series.ColumnNames())
	suite.InDelta(3.0, series.Value("SMA_5", 4).Unwrap(), 1e-9)
}
