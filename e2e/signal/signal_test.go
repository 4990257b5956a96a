package signal_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/rxtech-lab/argo-signal/e2e/signal/mockserver"
	"github.com/rxtech-lab/argo-signal/internal/api"
	"github.com/rxtech-lab/argo-signal/internal/app"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const apiKey = "e2e-key"

// SignalE2ETestSuite drives the HTTP adapter end to end against a mock
// Alpha Vantage server.
type SignalE2ETestSuite struct {
	suite.Suite
	upstream *mockserver.MockAlphaVantageServer
	server   *api.Server
	baseURL  string
}

func TestSignalE2ESuite(t *testing.T) {
	suite.Run(t, new(SignalE2ETestSuite))
}

func (suite *SignalE2ETestSuite) SetupTest() {
	suite.upstream = mockserver.NewMockAlphaVantageServer(apiKey)
	suite.upstream.SetSeries("AAPL", mocks.GenerateYear())
	suite.upstream.SetSeries("TINY", mocks.GenerateYear()[:30])
	suite.Require().NoError(suite.upstream.Start(":0"))

	cfg := config.Default()
	cfg.AlphaVantage.ApiKey = apiKey
	cfg.AlphaVantage.BaseURL = suite.upstream.BaseURL()
	cfg.AlphaVantage.OutputSize = "full"
	suite.Require().NoError(cfg.Validate())

	application, err := app.New(cfg, logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.server = api.NewServer(application.Service, application.Metrics, application.Logger)
	suite.Require().NoError(suite.server.Start(":0"))
	suite.baseURL = "http://" + suite.server.Address()
}

func (suite *SignalE2ETestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop(suite.T().Context())
	}

	if suite.upstream != nil {
		suite.upstream.Stop()
	}
}

func (suite *SignalE2ETestSuite) get(path string) (int, []byte) {
	resp, err := http.Get(suite.baseURL + path)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	return resp.StatusCode, body
}

func (suite *SignalE2ETestSuite) TestSignalsEndToEnd() {
	status, body := suite.get("/api/v1/signals/aapl?window=1y")
	suite.Require().Equal(http.StatusOK, status, string(body))

	var report struct {
		Symbol   string `json:"symbol"`
		Provider string `json:"provider"`
		Summary  struct {
			Window     string `json:"window"`
			LastSignal string `json:"last_signal"`
			Confidence struct {
				Level string `json:"level"`
			} `json:"confidence"`
		} `json:"summary"`
		Series struct {
			Dates   []string             `json:"dates"`
			Columns map[string][]*float64 `json:"columns"`
			Signals []string             `json:"signals"`
		} `json:"series"`
	}
	suite.Require().NoError(json.Unmarshal(body, &report))

	suite.Equal("AAPL", report.Symbol)
	suite.Equal("alphavantage", report.Provider)
	suite.Equal("1Y", report.Summary.Window)
	suite.Contains([]string{"BUY", "SELL", "HOLD"}, report.Summary.LastSignal)
	suite.Contains([]string{"HIGH", "MEDIUM", "LOW"}, report.Summary.Confidence.Level)
	suite.Len(report.Series.Dates, 252)
	suite.Len(report.Series.Signals, 252)

	// rows before the 50 day average has a full window stay null
	sma50 := report.Series.Columns["SMA_50"]
	suite.Require().Len(sma50, 252)
	suite.Nil(sma50[0])
	suite.Nil(sma50[48])
	suite.NotNil(sma50[49])

	requests := suite.upstream.Requests()
	suite.Require().Len(requests, 1)
	suite.Equal("TIME_SERIES_DAILY", requests[0].Function)
	suite.Equal(apiKey, requests[0].APIKey)

	status, body = suite.get("/metrics")
	suite.Equal(http.StatusOK, status)
	suite.Contains(string(body), `argo_signal_analyses_total{signal="`+report.Summary.LastSignal+`",symbol="AAPL"} 1`)
}

func (suite *SignalE2ETestSuite) TestInsufficientHistory() {
	status, body := suite.get("/api/v1/signals/TINY")
	suite.Equal(http.StatusUnprocessableEntity, status)

	var resp api.ErrorResponse
	suite.Require().NoError(json.Unmarshal(body, &resp))
	suite.Equal(errors.ErrCodeInsufficientData, resp.Code)
	suite.NotEmpty(resp.Hint)
}

func (suite *SignalE2ETestSuite) TestUpstreamFailures() {
	tests := []struct {
		name string
		mode mockserver.Mode
	}{
		{name: "rate limited", mode: mockserver.ModeRateLimited},
		{name: "invalid symbol", mode: mockserver.ModeInvalidSymbol},
		{name: "server error", mode: mockserver.ModeServerError},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.upstream.SetMode(tc.mode)

			status, body := suite.get("/api/v1/signals/AAPL")
			suite.Equal(http.StatusBadGateway, status)

			var resp api.ErrorResponse
			suite.Require().NoError(json.Unmarshal(body, &resp))
			suite.Equal(errors.ErrCodeMarketDataFetchFailed, resp.Code)
		})
	}
}

func (suite *SignalE2ETestSuite) TestHealth() {
	status, body := suite.get("/healthz")
	suite.Equal(http.StatusOK, status)
	suite.Contains(string(body), `"status":"ok"`)
}
