package signal

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Config holds the thresholds of both rule banks.
type Config struct {
	RSIOversold      float64 `yaml:"rsi_oversold" json:"rsi_oversold" jsonschema:"title=RSI Oversold,description=RSI level below which a rising RSI counts as bullish,default=35" validate:"gt=0,lt=100"`
	RSIOverbought    float64 `yaml:"rsi_overbought" json:"rsi_overbought" jsonschema:"title=RSI Overbought,description=RSI level above which a falling RSI counts as bearish,default=65" validate:"gt=0,lt=100,gtfield=RSIOversold"`
	VolumeRatio      float64 `yaml:"volume_ratio" json:"volume_ratio" jsonschema:"title=Volume Ratio,description=Volume over its rolling mean that counts as heavy volume,default=1.2" validate:"gt=0"`
	Momentum         float64 `yaml:"momentum" json:"momentum" jsonschema:"title=Momentum,description=Fractional price change over the momentum lookback that counts as momentum,default=0.02" validate:"gt=0"`
	MomentumLookback int     `yaml:"momentum_lookback" json:"momentum_lookback" jsonschema:"title=Momentum Lookback,description=Rows used for the price change,default=5" validate:"gte=1"`
	VolumeWindow     int     `yaml:"volume_window" json:"volume_window" jsonschema:"title=Volume Window,description=Rows in the rolling volume mean,default=20" validate:"gte=1"`
	BuyThreshold     int     `yaml:"buy_threshold" json:"buy_threshold" jsonschema:"title=Buy Threshold,description=Bullish rules needed for BUY,default=2" validate:"gte=1,lte=6"`
	SellThreshold    int     `yaml:"sell_threshold" json:"sell_threshold" jsonschema:"title=Sell Threshold,description=Bearish rules needed for SELL,default=2" validate:"gte=1,lte=6"`
}

// DefaultConfig returns the thresholds the rule banks were tuned with.
func DefaultConfig() Config {
	return Config{
		RSIOversold:      35,
		RSIOverbought:    65,
		VolumeRatio:      1.2,
		Momentum:         0.02,
		MomentumLookback: 5,
		VolumeWindow:     20,
		BuyThreshold:     2,
		SellThreshold:    2,
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidThreshold, "invalid scorer config", err)
	}

	return nil
}

// WithDefaults fills zero or negative fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()

	if c.RSIOversold <= 0 {
		c.RSIOversold = defaults.RSIOversold
	}

	if c.RSIOverbought <= 0 {
		c.RSIOverbought = defaults.RSIOverbought
	}

	if c.VolumeRatio <= 0 {
		c.VolumeRatio = defaults.VolumeRatio
	}

	if c.Momentum <= 0 {
		c.Momentum = defaults.Momentum
	}

	if c.MomentumLookback <= 0 {
		c.MomentumLookback = defaults.MomentumLookback
	}

	if c.VolumeWindow <= 0 {
		c.VolumeWindow = defaults.VolumeWindow
	}

	if c.BuyThreshold <= 0 {
		c.BuyThreshold = defaults.BuyThreshold
	}

	if c.SellThreshold <= 0 {
		c.SellThreshold = defaults.SellThreshold
	}

	return c
}
