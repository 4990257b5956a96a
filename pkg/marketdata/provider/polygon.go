package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// DefaultPolygonLookbackDays is the calendar span requested when none is configured.
const DefaultPolygonLookbackDays = 365

// PolygonConfig contains configuration for Polygon.io daily aggregates.
type PolygonConfig struct {
	ApiKey       string `yaml:"api_key" json:"api_key" jsonschema:"title=API Key,description=Polygon.io API key (POLYGON_API_KEY)" keychain:"true"`
	LookbackDays int    `yaml:"lookback_days" json:"lookback_days" jsonschema:"title=Lookback Days,description=Calendar days of history to request,default=365" validate:"gte=0"`
}

// PolygonAggsIterator is the subset of the polygon aggregates iterator the client consumes.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient lists aggregates. The polygon REST client satisfies it through an adapter.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRESTClient struct {
	client *polygon.Client
}

func (p *polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return p.client.ListAggs(ctx, params, options...)
}

// PolygonClient fetches adjusted daily aggregates.
type PolygonClient struct {
	apiClient    PolygonAPIClient
	lookbackDays int
	logger       *logger.Logger
	now          func() time.Time
}

// NewPolygonClient creates a client backed by the Polygon REST API.
func NewPolygonClient(config PolygonConfig, log *logger.Logger) (*PolygonClient, error) {
	if config.ApiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey, "polygon apiKey is required: set polygon.api_key or POLYGON_API_KEY")
	}

	client := NewPolygonClientWithAPI(&polygonRESTClient{client: polygon.New(config.ApiKey)}, config.LookbackDays, log)

	return client, nil
}

// NewPolygonClientWithAPI creates a client over any PolygonAPIClient, e.g. a test double.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, lookbackDays int, log *logger.Logger) *PolygonClient {
	if lookbackDays <= 0 {
		lookbackDays = DefaultPolygonLookbackDays
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonClient{
		apiClient:    apiClient,
		lookbackDays: lookbackDays,
		logger:       log.Named("polygon"),
		now:          time.Now,
	}
}

// Name returns the provider type.
func (c *PolygonClient) Name() ProviderType {
	return ProviderPolygon
}

// FetchDaily lists one aggregate per trading day over the lookback window.
func (c *PolygonClient) FetchDaily(ctx context.Context, symbol string) ([]types.PriceBar, error) {
	endDate := c.now().UTC()
	startDate := endDate.AddDate(0, 0, -c.lookbackDays)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithAdjusted(true).WithOrder(models.Asc).WithLimit(50000)

	c.logger.Debug("Listing daily aggregates",
		zap.String("symbol", symbol),
		zap.Time("from", startDate),
		zap.Time("to", endDate),
	)

	iter := c.apiClient.ListAggs(ctx, params)

	var bars []types.PriceBar

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.PriceBar{
			Date:   tradingDate(time.Time(agg.Timestamp)),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "error iterating polygon aggregates for %s", symbol)
	}

	c.logger.Info("Fetched daily aggregates", zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	return bars, nil
}

var newYork = loadNewYork()

func loadNewYork() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}

	return loc
}

// tradingDate maps a daily bar timestamp (midnight Eastern) to its calendar date at UTC midnight.
func tradingDate(ts time.Time) time.Time {
	local := ts.In(newYork)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
