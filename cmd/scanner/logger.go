package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/owicyfa/Transactions-scanner/flags"
)

// setupLogging routes logs to stderr so stdout only carries the report.
func setupLogging(ctx *cli.Context) error {
	lvl, err := parseLevel(ctx.String(flags.LogLevelFlag.Name))
	if err != nil {
		return err
	}
	log.SetDefault(newLogger(os.Stderr, lvl))
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return log.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

func newLogger(w io.Writer, lvl slog.Level) log.Logger {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, useColor))
}
