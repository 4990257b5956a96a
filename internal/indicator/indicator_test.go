package indicator

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type IndicatorInterfaceTestSuite struct {
	suite.Suite
}

func TestIndicatorInterfaceSuite(t *testing.T) {
	suite.Run(t, new(IndicatorInterfaceTestSuite))
}

// closeBars builds daily bars whose close follows closes.
func closeBars(closes ...float64) []types.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

// linearCloses returns n closes starting at start and stepping by step.
func linearCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}

	return closes
}

func (suite *IndicatorInterfaceTestSuite) TestIndicatorsSatisfyInterface() {
	var _ Indicator = &MA{}
	var _ Indicator = &EMA{}
	var _ Indicator = &RSI{}
	var _ Indicator = &MACD{}
}

func (suite *IndicatorInterfaceTestSuite) TestParsePeriod() {
	tests := []struct {
		name     string
		param    any
		expected int
		code     errors.ErrorCode
	}{
		{name: "int", param: 14, expected: 14},
		{name: "whole float", param: 20.0, expected: 20},
		{name: "fractional float", param: 2.5, code: errors.ErrCodeInvalidType},
		{name: "string", param: "14", code: errors.ErrCodeInvalidType},
		{name: "zero", param: 0, code: errors.ErrCodeInvalidPeriod},
		{name: "negative", param: -3, code: errors.ErrCodeInvalidPeriod},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			period, err := parsePeriod(tc.param, "period")
			if tc.code != 0 {
				suite.Error(err)
				suite.True(errors.HasCode(err, tc.code))

				return
			}

			suite.NoError(err)
			suite.Equal(tc.expected, period)
		})
	}
}
