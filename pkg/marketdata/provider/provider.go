package provider

import (
	"context"
	"os"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderAlphaVantage ProviderType = "alphavantage"
	ProviderPolygon      ProviderType = "polygon"
	ProviderFile         ProviderType = "file"
)

// AllProviders lists the supported provider types.
var AllProviders = []ProviderType{ProviderAlphaVantage, ProviderPolygon, ProviderFile}

// Provider supplies a daily price series for one symbol.
// Implementations return bars sorted ascending by date. They resolve symbols,
// authenticate and report transport failures; they never retry.
type Provider interface {
	// Name returns the provider type
	Name() ProviderType
	// FetchDaily returns the daily bars of symbol.
	// The context can be used to cancel the request.
	FetchDaily(ctx context.Context, symbol string) ([]types.PriceBar, error)
}

// Config selects a provider and carries the settings of each implementation.
type Config struct {
	Type         ProviderType       `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Market data source,enum=alphavantage,enum=polygon,enum=file,default=alphavantage" validate:"required,oneof=alphavantage polygon file"`
	AlphaVantage AlphaVantageConfig `yaml:"alphavantage" json:"alphavantage" jsonschema:"title=Alpha Vantage,description=Alpha Vantage settings"`
	Polygon      PolygonConfig      `yaml:"polygon" json:"polygon" jsonschema:"title=Polygon,description=Polygon.io settings"`
	File         FileConfig         `yaml:"file" json:"file" jsonschema:"title=File,description=Local parquet or CSV settings"`
}

// NewProvider creates a new market data provider based on the provider type.
func NewProvider(config Config, log *logger.Logger) (Provider, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	switch config.Type {
	case ProviderAlphaVantage:
		return NewAlphaVantageClient(config.AlphaVantage, log)
	case ProviderPolygon:
		return NewPolygonClient(config.Polygon, log)
	case ProviderFile:
		return NewFileProvider(config.File, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", config.Type)
	}
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
