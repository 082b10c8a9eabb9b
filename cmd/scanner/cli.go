package main

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	transactions_scanner "github.com/owicyfa/Transactions-scanner"
	"github.com/owicyfa/Transactions-scanner/common/cliapp"
	"github.com/owicyfa/Transactions-scanner/config"
	"github.com/owicyfa/Transactions-scanner/flags"
)

func runScanner(ctx *cli.Context) (cliapp.Lifecycle, error) {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Error("failed to load config", "error", err)
		return nil, err
	}
	return transactions_scanner.NewTxScanner(ctx.Context, &cfg, os.Stdout)
}

func NewCli() *cli.App {
	myFlags := flags.Flags
	return &cli.App{
		Version:              "v0.0.1",
		Description:          "Ranks the callers of a set of addresses from trace_filter over recent blocks",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:        "scan",
				Description: "Scans the target addresses and prints the caller report",
				Flags:       myFlags,
				Before:      setupLogging,
				Action:      cliapp.LifecycleCmd(runScanner),
			},
			{
				Name:        "version",
				Description: "print version",
				Action: func(ctx *cli.Context) error {
					cli.ShowVersion(ctx)
					return nil
				},
			},
		},
	}
}
