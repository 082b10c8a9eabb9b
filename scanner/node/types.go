package node

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TraceFilterRequest is the single parameter object of trace_filter.
// Block bounds stay strings so an out-of-range bound reaches the node untouched.
type TraceFilterRequest struct {
	FromBlock string           `json:"fromBlock"`
	ToBlock   string           `json:"toBlock"`
	ToAddress []common.Address `json:"toAddress,omitempty"`
}

// NewToAddressFilter builds a trace_filter request for calls into addr over [from, to].
func NewToAddressFilter(addr common.Address, from, to *big.Int) TraceFilterRequest {
	return TraceFilterRequest{
		FromBlock: hexutil.EncodeBig(from),
		ToBlock:   hexutil.EncodeBig(to),
		ToAddress: []common.Address{addr},
	}
}

// Trace is one parity-style trace entry ("call", "create", "suicide", "reward").
type Trace struct {
	Action          TraceAction  `json:"action"`
	BlockHash       *common.Hash `json:"blockHash,omitempty"`
	BlockNumber     uint64       `json:"blockNumber"`
	Subtraces       uint64       `json:"subtraces"`
	TraceAddress    []uint64     `json:"traceAddress"`
	TransactionHash *common.Hash `json:"transactionHash,omitempty"`
	Type            string       `json:"type"`
	Error           string       `json:"error,omitempty"`
}

// TraceAction carries the call details. From is nil for reward traces.
type TraceAction struct {
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to,omitempty"`
	CallType string          `json:"callType,omitempty"`
	Value    string          `json:"value,omitempty"`
	Gas      string          `json:"gas,omitempty"`
}

// Caller returns the origin of the trace, if it has one.
func (t Trace) Caller() (common.Address, bool) {
	if t.Action.From == nil {
		return common.Address{}, false
	}
	return *t.Action.From, true
}
