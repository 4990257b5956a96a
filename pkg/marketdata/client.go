package marketdata

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// WriterFactory creates the writer that receives a downloaded series.
type WriterFactory func(outputPath string, symbol string, log *logger.Logger) writer.MarketDataWriter

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	DataPath string        `validate:"required"`
	Format   writer.Format `validate:"omitempty,oneof=parquet csv"`
	// Progress receives a progress bar while bars are written. Nil disables it.
	Progress io.Writer
}

// Client downloads daily bars from a provider and stores them using a writer.
type Client struct {
	provider  provider.Provider
	config    ClientConfig
	newWriter WriterFactory
	logger    *logger.Logger
}

// NewClient creates a new market data client over marketProvider.
func NewClient(marketProvider provider.Provider, config ClientConfig, log *logger.Logger) (*Client, error) {
	if marketProvider == nil {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "market data provider is required")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if config.Format == "" {
		config.Format = writer.FormatParquet
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:  marketProvider,
		config:    config,
		newWriter: writer.NewDuckDBWriter,
		logger:    log.Named("marketdata"),
	}, nil
}

// WithWriterFactory replaces the writer used by Download.
func (c *Client) WithWriterFactory(factory WriterFactory) *Client {
	c.newWriter = factory

	return c
}

// Download fetches the daily bars of symbol and writes them to
// <DataPath>/<SYMBOL>_<first>_<last>_1_day.<format>.
// It returns the path of the written file.
func (c *Client) Download(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	bars, err := c.provider.FetchDaily(ctx, symbol)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s from %s", symbol, c.provider.Name())
	}

	if len(bars) == 0 {
		return "", errors.Newf(errors.ErrCodeNoDataFound, "no bars returned for %s", symbol)
	}

	outputPath := c.OutputPath(symbol, bars)

	if err := os.MkdirAll(c.config.DataPath, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create data directory", err)
	}

	marketWriter := c.newWriter(outputPath, symbol, c.logger)
	defer func() {
		if err := marketWriter.Close(); err != nil {
			// Just log the error but don't fail the download operation
			c.logger.Warn("failed to close writer", zap.Error(err))
		}
	}()

	if err := marketWriter.Initialize(); err != nil {
		return "", err
	}

	bar := c.progressBar(symbol, len(bars))

	for _, priceBar := range bars {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "download cancelled", err)
		}

		if err := marketWriter.Write(priceBar); err != nil {
			return "", err
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	path, err := marketWriter.Finalize()
	if err != nil {
		return "", err
	}

	c.logger.Info("download completed",
		zap.String("symbol", symbol),
		zap.String("provider", string(c.provider.Name())),
		zap.Int("bars", len(bars)),
		zap.String("path", path),
	)

	return path, nil
}

// OutputPath returns the file a download of bars for symbol is written to.
func (c *Client) OutputPath(symbol string, bars []types.PriceBar) string {
	first := bars[0].Date.Format(types.DateLayout)
	last := bars[len(bars)-1].Date.Format(types.DateLayout)
	outputFileName := fmt.Sprintf("%s_%s_%s_1_day.%s", symbol, first, last, c.config.Format)

	return filepath.Join(c.config.DataPath, outputFileName)
}

func (c *Client) progressBar(symbol string, total int) *progressbar.ProgressBar {
	if c.config.Progress == nil {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.config.Progress),
		progressbar.OptionSetDescription("writing "+symbol),
		progressbar.OptionShowCount(),
	)
}
