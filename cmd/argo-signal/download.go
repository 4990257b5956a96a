package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
)

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Download daily bars of a symbol to a parquet or CSV file",
		ArgsUsage: "[symbol]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Output directory, overrides data_path",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (parquet or csv)",
				Value:   string(writer.FormatParquet),
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Hide the progress bar",
			},
		},
		Action: downloadAction,
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	format, err := writer.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Logger.Sync() //nolint:errcheck

	clientConfig := marketdata.ClientConfig{
		DataPath: application.Config.DataPath,
		Format:   format,
	}

	if v := cmd.String("data"); v != "" {
		clientConfig.DataPath = v
	}

	if !cmd.Bool("quiet") {
		clientConfig.Progress = cmd.Root().ErrWriter
	}

	client, err := marketdata.NewClient(application.Provider, clientConfig, application.Logger)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	path, err := client.Download(ctx, symbolArg(cmd, application.Config))
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, path)

	return nil
}
