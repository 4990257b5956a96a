package main

import (
	"strings"

	"github.com/rxtech-lab/argo-signal/internal/app"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if v := cmd.String("symbol"); v != "" {
		cfg.Symbol = strings.ToUpper(strings.TrimSpace(v))
	}

	if v := cmd.String("provider"); v != "" {
		cfg.Provider = provider.ProviderType(strings.ToLower(v))
	}

	if v := cmd.String("file"); v != "" {
		cfg.File.Path = v
	}

	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// loadApp builds the application for a command.
func loadApp(cmd *cli.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLoggerWithOutput(cfg.LogLevel, "stderr")
	if err != nil {
		return nil, err
	}

	return app.New(cfg, log)
}

// symbolArg returns the first positional argument or the configured symbol.
func symbolArg(cmd *cli.Command, cfg config.Config) string {
	if cmd.Args().Len() > 0 {
		return strings.ToUpper(strings.TrimSpace(cmd.Args().First()))
	}

	return cfg.Symbol
}
