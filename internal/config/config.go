package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"github.com/rxtech-lab/argo-signal/pkg/utils"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSymbol   = "AAPL"
	DefaultAddr     = ":8080"
	DefaultCron     = "0 30 16 * * 1-5"
	DefaultDataPath = "./data"
	DefaultLogLevel = "info"
)

// Environment variables that override the file.
const (
	EnvAlphaVantageAPIKey = "ALPHAVANTAGE_API_KEY"
	EnvPolygonAPIKey      = "POLYGON_API_KEY"
	EnvSymbol             = "ARGO_SIGNAL_SYMBOL"
	EnvProvider           = "ARGO_SIGNAL_PROVIDER"
	EnvLogLevel           = "ARGO_SIGNAL_LOG_LEVEL"
)

// ExportConfig selects where scored series are written after a run.
type ExportConfig struct {
	Path   string        `yaml:"path" json:"path" jsonschema:"title=Path,description=File the scored series is exported to; empty disables export"`
	Format writer.Format `yaml:"format" json:"format" jsonschema:"title=Format,description=Export format; inferred from the extension when empty,enum=parquet,enum=csv" validate:"omitempty,oneof=parquet csv"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" jsonschema:"title=Address,description=Listen address,default=:8080" validate:"required"`
}

// ScheduleConfig configures the watch command.
type ScheduleConfig struct {
	Cron string `yaml:"cron" json:"cron" jsonschema:"title=Cron,description=Cron expression with a seconds field,default=0 30 16 * * 1-5" validate:"required"`
}

// Config is the application configuration.
type Config struct {
	Provider     provider.ProviderType       `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Market data source,enum=alphavantage,enum=polygon,enum=file,default=alphavantage" validate:"required,oneof=alphavantage polygon file"`
	Symbol       string                      `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Ticker analyzed when none is given,default=AAPL" validate:"required"`
	AlphaVantage provider.AlphaVantageConfig `yaml:"alphavantage" json:"alphavantage" jsonschema:"title=Alpha Vantage"`
	Polygon      provider.PolygonConfig      `yaml:"polygon" json:"polygon" jsonschema:"title=Polygon"`
	File         provider.FileConfig         `yaml:"file" json:"file" jsonschema:"title=File"`
	Scorer       signal.Config               `yaml:"scorer" json:"scorer" jsonschema:"title=Scorer,description=Rule thresholds"`
	Export       ExportConfig                `yaml:"export" json:"export" jsonschema:"title=Export"`
	Server       ServerConfig                `yaml:"server" json:"server" jsonschema:"title=Server"`
	Schedule     ScheduleConfig              `yaml:"schedule" json:"schedule" jsonschema:"title=Schedule"`
	DataPath     string                      `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=Directory raw downloads are written to,default=./data" validate:"required"`
	LogLevel     string                      `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Provider: provider.ProviderAlphaVantage,
		Symbol:   DefaultSymbol,
		AlphaVantage: provider.AlphaVantageConfig{
			BaseURL:    provider.DefaultAlphaVantageBaseURL,
			OutputSize: "compact",
			Timeout:    provider.DefaultAlphaVantageTimeout,
		},
		Polygon: provider.PolygonConfig{
			LookbackDays: provider.DefaultPolygonLookbackDays,
		},
		Scorer:   signal.DefaultConfig(),
		Server:   ServerConfig{Addr: DefaultAddr},
		Schedule: ScheduleConfig{Cron: DefaultCron},
		DataPath: DefaultDataPath,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads path when it exists, applies environment overrides, fills
// defaults and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)

		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(errors.ErrCodeConfigParseFailed, err, "failed to parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read config %s", path)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML data without reading the environment.
func Parse(data []byte) (Config, error) {
	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigParseFailed, "failed to parse config", err)
	}

	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAlphaVantageAPIKey); ok && v != "" {
		c.AlphaVantage.ApiKey = v
	}

	if v, ok := lookup(EnvPolygonAPIKey); ok && v != "" {
		c.Polygon.ApiKey = v
	}

	if v, ok := lookup(EnvSymbol); ok && v != "" {
		c.Symbol = v
	}

	if v, ok := lookup(EnvProvider); ok && v != "" {
		c.Provider = provider.ProviderType(strings.ToLower(v))
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// WithDefaults fills zero fields from Default.
func (c Config) WithDefaults() Config {
	defaults := Default()

	if c.Provider == "" {
		c.Provider = defaults.Provider
	}

	if c.Symbol == "" {
		c.Symbol = defaults.Symbol
	}

	c.Symbol = strings.ToUpper(strings.TrimSpace(c.Symbol))

	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = defaults.AlphaVantage.BaseURL
	}

	if c.AlphaVantage.OutputSize == "" {
		c.AlphaVantage.OutputSize = defaults.AlphaVantage.OutputSize
	}

	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = defaults.AlphaVantage.Timeout
	}

	if c.Polygon.LookbackDays == 0 {
		c.Polygon.LookbackDays = defaults.Polygon.LookbackDays
	}

	c.Scorer = c.Scorer.WithDefaults()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}

	if c.Schedule.Cron == "" {
		c.Schedule.Cron = defaults.Schedule.Cron
	}

	if c.DataPath == "" {
		c.DataPath = defaults.DataPath
	}

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	return c
}

// Validate validates the struct tags of the whole configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// ProviderConfig returns the settings handed to provider.NewProvider.
func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		Type:         c.Provider,
		AlphaVantage: c.AlphaVantage,
		Polygon:      c.Polygon,
		File:         c.File,
	}
}

// GenerateSchemaJSON returns the JSON schema of Config.
func GenerateSchemaJSON() (string, error) {
	//nolint:exhaustruct // Empty struct is intentional for schema generation
	return utils.GetSchemaFromConfigIndent(Config{})
}
