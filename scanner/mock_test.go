package scanner

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

type mockEthClient struct{ mock.Mock }

func (m *mockEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockEthClient) TraceFilter(ctx context.Context, req node.TraceFilterRequest) ([]node.Trace, error) {
	args := m.Called(ctx, req)
	traces, _ := args.Get(0).([]node.Trace)
	return traces, args.Error(1)
}

func (m *mockEthClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	args := m.Called(ctx, account, blockNumber)
	code, _ := args.Get(0).([]byte)
	return code, args.Error(1)
}

func (m *mockEthClient) Close() { m.Called() }

// tracesFrom builds one call trace per caller; the zero address stands for a
// trace without an origin.
func tracesFrom(to common.Address, callers ...common.Address) []node.Trace {
	traces := make([]node.Trace, 0, len(callers))
	for i := range callers {
		trace := node.Trace{Type: "call", Action: node.TraceAction{To: &to}}
		if callers[i] != (common.Address{}) {
			trace.Action.From = &callers[i]
		}
		traces = append(traces, trace)
	}
	return traces
}

var contractCode = []byte{0x60, 0x80, 0x60, 0x40}
