package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultAlphaVantageBaseURL is the public Alpha Vantage endpoint.
	DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"
	// DefaultAlphaVantageTimeout bounds a single request.
	DefaultAlphaVantageTimeout = 30 * time.Second

	alphaVantagePlaceholderKey = "YOUR_API_KEY_HERE"
	alphaVantageSeriesKey      = "Time Series (Daily)"
)

// AlphaVantageConfig contains configuration for the Alpha Vantage daily series endpoint.
type AlphaVantageConfig struct {
	ApiKey     string        `yaml:"api_key" json:"api_key" jsonschema:"title=API Key,description=Alpha Vantage API key (ALPHAVANTAGE_API_KEY)" keychain:"true"`
	BaseURL    string        `yaml:"base_url" json:"base_url" jsonschema:"title=Base URL,description=Alpha Vantage endpoint,default=https://www.alphavantage.co" validate:"omitempty,url"`
	OutputSize string        `yaml:"output_size" json:"output_size" jsonschema:"title=Output Size,description=compact returns the latest 100 days and full returns the whole history,enum=compact,enum=full,default=compact" validate:"omitempty,oneof=compact full"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"title=Timeout,description=Request timeout,default=30s" validate:"gte=0"`
}

// AlphaVantageClient fetches TIME_SERIES_DAILY payloads.
type AlphaVantageClient struct {
	client     *resty.Client
	apiKey     string
	outputSize string
	logger     *logger.Logger
}

// alphaVantageBar is one entry of the daily series; every value arrives as a string.
type alphaVantageBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type alphaVantageResponse struct {
	ErrorMessage string                     `json:"Error Message"`
	Note         string                     `json:"Note"`
	Information  string                     `json:"Information"`
	Series       map[string]alphaVantageBar `json:"Time Series (Daily)"`
}

// NewAlphaVantageClient creates a client. The API key is required.
func NewAlphaVantageClient(config AlphaVantageConfig, log *logger.Logger) (*AlphaVantageClient, error) {
	if config.ApiKey == "" || config.ApiKey == alphaVantagePlaceholderKey {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "alpha vantage api key is required: set alphavantage.api_key or ALPHAVANTAGE_API_KEY")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultAlphaVantageBaseURL
	}

	if config.OutputSize == "" {
		config.OutputSize = "compact"
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultAlphaVantageTimeout
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json")

	return &AlphaVantageClient{
		client:     client,
		apiKey:     config.ApiKey,
		outputSize: config.OutputSize,
		logger:     log.Named("alphavantage"),
	}, nil
}

// Name returns the provider type.
func (c *AlphaVantageClient) Name() ProviderType {
	return ProviderAlphaVantage
}

// FetchDaily requests the daily series of symbol and returns it sorted ascending.
func (c *AlphaVantageClient) FetchDaily(ctx context.Context, symbol string) ([]types.PriceBar, error) {
	c.logger.Debug("Fetching daily series", zap.String("symbol", symbol), zap.String("output_size", c.outputSize))

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"symbol":     symbol,
			"apikey":     c.apiKey,
			"outputsize": c.outputSize,
		}).
		Get("/query")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "network error fetching %s", symbol)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeDataSourceUnavailable, "alpha vantage returned HTTP %d for %s", resp.StatusCode(), symbol)
	}

	var payload alphaVantageResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "json decode error", err)
	}

	switch {
	case payload.ErrorMessage != "":
		return nil, errors.Newf(errors.ErrCodeProviderAPIError, "API Error: %s", payload.ErrorMessage)
	case payload.Note != "":
		return nil, errors.Newf(errors.ErrCodeRateLimited, "API Rate Limit: %s", payload.Note)
	case payload.Information != "":
		return nil, errors.Newf(errors.ErrCodeRateLimited, "API Rate Limit: %s", payload.Information)
	case payload.Series == nil:
		return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "invalid data format: missing %q", alphaVantageSeriesKey)
	}

	bars, err := parseAlphaVantageSeries(payload.Series)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetched daily series", zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	return bars, nil
}

func parseAlphaVantageSeries(series map[string]alphaVantageBar) ([]types.PriceBar, error) {
	bars := make([]types.PriceBar, 0, len(series))

	for day, raw := range series {
		date, err := time.Parse(types.DateLayout, day)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid date %q", day)
		}

		bar := types.PriceBar{Date: date}

		fields := []struct {
			name  string
			value string
			dest  *float64
		}{
			{"open", raw.Open, &bar.Open},
			{"high", raw.High, &bar.High},
			{"low", raw.Low, &bar.Low},
			{"close", raw.Close, &bar.Close},
			{"volume", raw.Volume, &bar.Volume},
		}

		for _, f := range fields {
			v, err := strconv.ParseFloat(f.value, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid %s %q on %s", f.name, f.value, day)
			}

			*f.dest = v
		}

		bars = append(bars, bar)
	}

	slices.SortFunc(bars, func(a, b types.PriceBar) int {
		return a.Date.Compare(b.Date)
	})

	return bars, nil
}

// String hides the API key in logs.
func (c *AlphaVantageClient) String() string {
	return fmt.Sprintf("AlphaVantageClient{outputSize: %s}", c.outputSize)
}
