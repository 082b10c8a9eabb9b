package scanner

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

// BlockRange is an inclusive block window. From may be negative when the
// window is larger than the chain.
type BlockRange struct {
	From *big.Int
	To   *big.Int
}

type CallerStats struct {
	Count      int
	IsContract bool
	// FirstSeen is the index of the caller's first trace within its scan.
	FirstSeen int
}

// Kind renders the caller classification.
func (s CallerStats) Kind() string {
	if s.IsContract {
		return "Contract"
	}
	return "EOA"
}

type ScanResult struct {
	Address       common.Address
	TraceCount    int
	UniqueCallers int
	Callers       map[common.Address]*CallerStats
}

type Caller struct {
	Address common.Address
	CallerStats
}

type OutcomeStatus int

const (
	StatusEmpty OutcomeStatus = iota
	StatusActive
	StatusFault
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusActive:
		return "active"
	case StatusFault:
		return "fault"
	default:
		return "unknown"
	}
}

// ScanOutcome is what a single trace_filter query produced for one target.
// Traces is set only for StatusActive, Err only for StatusFault.
type ScanOutcome struct {
	Address common.Address
	Status  OutcomeStatus
	Traces  []node.Trace
	Err     error
}

type Report struct {
	RunID   uuid.UUID
	Range   BlockRange
	Targets int
	Faults  int
	Results []ScanResult
}

// Active is the number of targets that produced a result.
func (r *Report) Active() int {
	return len(r.Results)
}
