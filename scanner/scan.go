package scanner

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

// ScanAddress fetches the traces calling into addr over rng. Every RPC failure
// is reported as StatusFault; nothing is retried.
func ScanAddress(ctx context.Context, client node.EthClient, addr common.Address, rng BlockRange) ScanOutcome {
	traces, err := client.TraceFilter(ctx, node.NewToAddressFilter(addr, rng.From, rng.To))
	if err != nil {
		log.Debug("trace_filter failed", "address", addr, "err", err)
		return ScanOutcome{Address: addr, Status: StatusFault, Err: err}
	}
	if len(traces) == 0 {
		return ScanOutcome{Address: addr, Status: StatusEmpty}
	}
	return ScanOutcome{Address: addr, Status: StatusActive, Traces: traces}
}
