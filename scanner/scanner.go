package scanner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/owicyfa/Transactions-scanner/config"
	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

type Scanner struct {
	ethClient node.EthClient
	chainCfg  *config.ChainConfig
	out       io.Writer
	runID     uuid.UUID
}

func NewScanner(cfg *config.Config, client node.EthClient, out io.Writer) *Scanner {
	return &Scanner{
		ethClient: client,
		chainCfg:  &cfg.Chain,
		out:       out,
		runID:     uuid.New(),
	}
}

// Run scans every configured target one after another. Per-target RPC faults
// are skipped; failing to resolve the range or to classify a caller ends the run.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	targets := s.chainCfg.Targets
	log.Info("Starting scan", "run", s.runID, "targets", len(targets), "window", s.chainCfg.ScanBlocks)

	rng, err := ResolveRange(ctx, s.ethClient, s.chainCfg.ScanBlocks)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Scanning %d addresses from block %s to %s\n\n", len(targets), rng.From, rng.To)

	rep := &Report{RunID: s.runID, Range: rng, Targets: len(targets)}
	for i, addr := range targets {
		fmt.Fprintf(s.out, "\r[%d/%d] Scanning...", i+1, len(targets))

		outcome := ScanAddress(ctx, s.ethClient, addr, rng)
		switch outcome.Status {
		case StatusFault:
			rep.Faults++
		case StatusActive:
			callers, err := AnalyzeCallers(ctx, s.ethClient, outcome.Traces)
			if err != nil {
				return rep, errors.Wrapf(err, "analyze callers of %s", addr.Hex())
			}
			rep.Results = append(rep.Results, ScanResult{
				Address:       addr,
				TraceCount:    len(outcome.Traces),
				UniqueCallers: len(callers),
				Callers:       callers,
			})
		}

		if i < len(targets)-1 {
			if err := sleep(ctx, s.chainCfg.RequestDelay); err != nil {
				return rep, err
			}
		}
	}

	log.Info("Scan finished", "run", s.runID, "active", rep.Active(), "faults", rep.Faults, "targets", rep.Targets)
	return rep, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
