package scanner

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

// AnalyzeCallers tallies trace origins and classifies every distinct caller
// with one eth_getCode lookup. A lookup failure aborts the whole analysis.
func AnalyzeCallers(ctx context.Context, client node.EthClient, traces []node.Trace) (map[common.Address]*CallerStats, error) {
	callers := make(map[common.Address]*CallerStats)
	var order []common.Address
	for i, trace := range traces {
		caller, ok := trace.Caller()
		if !ok {
			continue
		}
		stats, seen := callers[caller]
		if !seen {
			stats = &CallerStats{FirstSeen: i}
			callers[caller] = stats
			order = append(order, caller)
		}
		stats.Count++
	}

	for _, caller := range order {
		code, err := client.CodeAt(ctx, caller, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "classify caller %s", caller.Hex())
		}
		callers[caller].IsContract = len(code) > 0
	}
	return callers, nil
}

// TopCallers returns at most n callers ordered by call count, busiest first.
// Equal counts keep the order in which the callers first appeared.
func TopCallers(callers map[common.Address]*CallerStats, n int) []Caller {
	all := make([]Caller, 0, len(callers))
	for addr, stats := range callers {
		all = append(all, Caller{Address: addr, CallerStats: *stats})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].FirstSeen < all[j].FirstSeen
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
