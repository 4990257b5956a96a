package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the config file, or of one provider's section",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "section",
				Usage: "Print only the schema of this provider's settings (alphavantage, polygon or file)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var (
				schema string
				err    error
			)

			if name := cmd.String("section"); name != "" {
				schema, err = marketdata.GetProviderConfigSchema(name)
			} else {
				schema, err = config.GenerateSchemaJSON()
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, schema)

			return err
		},
	}
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the supported market data providers",
		Action: func(_ context.Context, cmd *cli.Command) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Name", "Display name", "Auth", "Description")

			for _, name := range marketdata.GetSupportedProviders() {
				info, err := marketdata.GetProviderInfo(name)
				if err != nil {
					return err
				}

				auth := "no"
				if info.RequiresAuth {
					auth = "api key"
				}

				t.Row(info.Name, info.DisplayName, auth, info.Description)
			}

			_, err := fmt.Fprintln(cmd.Root().Writer, t.String())

			return err
		},
	}
}
