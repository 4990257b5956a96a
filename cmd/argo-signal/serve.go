package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/api"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve signals over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address, overrides server.addr",
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	application, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer application.Logger.Sync() //nolint:errcheck

	addr := application.Config.Server.Addr
	if v := cmd.String("addr"); v != "" {
		addr = v
	}

	server := api.NewServer(application.Service, application.Metrics, application.Logger)
	if err := server.Start(addr); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().ErrWriter, "listening on %s\n", server.Address())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		application.Logger.Error("shutdown failed", zap.Error(err))
		return err
	}

	application.Logger.Info("server stopped")

	return nil
}
