package cliapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

const defaultStopTimeout = 10 * time.Second

// Lifecycle is a one-shot application: Start blocks until the work is done or
// ctx is cancelled, Stop releases whatever Start used.
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Stopped() bool
}

type LifecycleAction func(ctx *cli.Context) (Lifecycle, error)

// LifecycleCmd turns a LifecycleAction into a cli action. SIGINT and SIGTERM
// cancel the running app; Stop always runs once Start returns.
func LifecycleCmd(fn LifecycleAction) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		appCtx, appCancel := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
		defer appCancel()

		app, err := fn(cliCtx)
		if err != nil {
			return fmt.Errorf("failed to setup: %w", err)
		}
		return runLifecycle(appCtx, app)
	}
}

func runLifecycle(ctx context.Context, app Lifecycle) error {
	runErr := app.Start(ctx)
	if runErr != nil {
		log.Error("application failed", "err", runErr)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), defaultStopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to stop app: %w", err))
	}
	return runErr
}
