package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/scheduler"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-run the analysis on a cron schedule",
		ArgsUsage: "[symbol]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "cron",
				Usage: "Cron expression with a seconds field, overrides schedule.cron",
			},
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Summary window (1M, 3M, 6M, 1Y, 2Y, 5Y or ALL)",
				Value:   string(analysis.DefaultWindow),
			},
			&cli.BoolFlag{
				Name:  "run-now",
				Usage: "Run once immediately before waiting for the first tick",
			},
		},
		Action: watchAction,
	}
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	window, err := analysis.ParseWindow(cmd.String("window"))
	if err != nil {
		return err
	}

	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	schedule := scheduler.Config{
		Cron:         application.Config.Schedule.Cron,
		Symbol:       symbolArg(cmd, application.Config),
		Window:       window,
		ExportPath:   application.Config.Export.Path,
		ExportFormat: application.Config.Export.Format,
	}

	if v := cmd.String("cron"); v != "" {
		schedule.Cron = v
	}

	s, err := scheduler.New(application.Service, application.Exporter, schedule, application.Logger)
	if err != nil {
		return err
	}

	if cmd.Bool("run-now") {
		report, err := s.RunNow(ctx)
		if err != nil {
			application.Logger.Error("initial run failed", zap.Error(err))
		} else {
			fmt.Fprintln(cmd.Root().Writer, renderSummary(report.Summary))
		}
	}

	s.Start(ctx)
	defer s.Stop()

	fmt.Fprintf(cmd.Root().ErrWriter, "watching %s, next run at %s\n", schedule.Symbol, s.Next().Format("2006-01-02 15:04:05"))

	<-ctx.Done()

	return nil
}
