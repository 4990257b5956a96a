package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Fetch a symbol, score every bar and print the summary",
		ArgsUsage: "[symbol]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Summary window (1M, 3M, 6M, 1Y, 2Y, 5Y or ALL)",
				Value:   string(analysis.DefaultWindow),
			},
			&cli.IntFlag{
				Name:    "rows",
				Aliases: []string{"n"},
				Usage:   "Number of newest rows to print",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format (text or json)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Write the scored series to a .parquet or .csv file",
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	window, err := analysis.ParseWindow(cmd.String("window"))
	if err != nil {
		return err
	}

	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Logger.Sync() //nolint:errcheck

	report, err := application.Service.RunWindow(ctx, symbolArg(cmd, application.Config), window)
	if err != nil {
		return err
	}

	exportPath := cmd.String("export")
	exportFormat := writer.Format("")

	if exportPath == "" {
		exportPath = application.Config.Export.Path
		exportFormat = application.Config.Export.Format
	}

	if exportPath != "" {
		path, err := application.Exporter.Export(report.Series, exportPath, exportFormat)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.Root().ErrWriter, "exported %d rows to %s\n", report.Series.Len(), path)
	}

	return writeReport(cmd.Root().Writer, report, cmd.String("output"), int(cmd.Int("rows")))
}
