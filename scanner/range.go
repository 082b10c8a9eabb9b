package scanner

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

// ResolveRange anchors the scan window at the current chain head.
// The lower bound is not clamped at genesis.
func ResolveRange(ctx context.Context, client node.EthClient, window uint64) (BlockRange, error) {
	head, err := client.BlockNumber(ctx)
	if err != nil {
		return BlockRange{}, errors.Wrap(err, "unable to query latest block")
	}

	to := new(big.Int).SetUint64(head)
	from := new(big.Int).Sub(to, new(big.Int).SetUint64(window))
	log.Info("resolved scan range", "from", from, "to", to, "window", window)
	return BlockRange{From: from, To: to}, nil
}
