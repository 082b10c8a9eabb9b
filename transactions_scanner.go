package transactions_scanner

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"

	"github.com/owicyfa/Transactions-scanner/config"
	"github.com/owicyfa/Transactions-scanner/report"
	"github.com/owicyfa/Transactions-scanner/scanner"
	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

type TxScanner struct {
	ethClient node.EthClient
	scanner   *scanner.Scanner
	out       io.Writer
	top       int
	stopped   atomic.Bool
}

func NewTxScanner(ctx context.Context, cfg *config.Config, out io.Writer) (*TxScanner, error) {
	ethClient, err := node.DialEthClient(ctx, cfg.Chain.ChainRpcUrl, node.Options{
		RequestTimeout: cfg.Chain.RequestTimeout,
		RateLimit:      cfg.Chain.RateLimit,
	})
	if err != nil {
		log.Error("new eth client fail", "err", err)
		return nil, err
	}
	return newTxScanner(cfg, ethClient, out), nil
}

func newTxScanner(cfg *config.Config, client node.EthClient, out io.Writer) *TxScanner {
	return &TxScanner{
		ethClient: client,
		scanner:   scanner.NewScanner(cfg, client, out),
		out:       out,
		top:       cfg.Report.TopCallers,
	}
}

// Start runs the scan to completion and prints the report.
func (ts *TxScanner) Start(ctx context.Context) error {
	if _, err := io.WriteString(ts.out, "🔍 Multi-Pool Scanner\n\n"); err != nil {
		return err
	}
	rep, err := ts.scanner.Run(ctx)
	if err != nil {
		return err
	}
	return report.Print(ts.out, rep, ts.top)
}

func (ts *TxScanner) Stop(ctx context.Context) error {
	if ts.stopped.CompareAndSwap(false, true) {
		ts.ethClient.Close()
	}
	return nil
}

func (ts *TxScanner) Stopped() bool {
	return ts.stopped.Load()
}
