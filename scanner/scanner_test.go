package scanner

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/owicyfa/Transactions-scanner/config"
	"github.com/owicyfa/Transactions-scanner/scanner/node"
)

func newTestConfig(window uint64, targets ...common.Address) *config.Config {
	return &config.Config{
		Chain: config.ChainConfig{
			ScanBlocks: window,
			Targets:    targets,
		},
	}
}

/* -------------------------------------------------------------------------- */
/*                               Range resolver                               */
/* -------------------------------------------------------------------------- */

func TestResolveRange(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(100_000), nil).Once()

	rng, err := ResolveRange(context.Background(), client, 7200)
	require.NoError(t, err)
	assert.Equal(t, int64(92_800), rng.From.Int64())
	assert.Equal(t, int64(100_000), rng.To.Int64())
}

func TestResolveRangeBelowGenesis(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(100), nil).Once()

	rng, err := ResolveRange(context.Background(), client, 7200)
	require.NoError(t, err)
	assert.Equal(t, int64(-7100), rng.From.Int64())
	assert.Equal(t, int64(100), rng.To.Int64())
}

func TestResolveRangeError(t *testing.T) {
	client := new(mockEthClient)
	rpcErr := errors.New("dial tcp: connection refused")
	client.On("BlockNumber", mock.Anything).Return(uint64(0), rpcErr).Once()

	_, err := ResolveRange(context.Background(), client, 7200)
	assert.ErrorIs(t, err, rpcErr)
}

/* -------------------------------------------------------------------------- */
/*                               Address scanner                              */
/* -------------------------------------------------------------------------- */

func TestScanAddress(t *testing.T) {
	rng := BlockRange{From: big.NewInt(10), To: big.NewInt(20)}
	req := node.NewToAddressFilter(pool, rng.From, rng.To)

	t.Run("Active", func(t *testing.T) {
		client := new(mockEthClient)
		client.On("TraceFilter", mock.Anything, req).Return(tracesFrom(pool, alice, bob), nil).Once()

		outcome := ScanAddress(context.Background(), client, pool, rng)
		assert.Equal(t, StatusActive, outcome.Status)
		assert.Len(t, outcome.Traces, 2)
		assert.NoError(t, outcome.Err)
	})

	t.Run("Empty", func(t *testing.T) {
		client := new(mockEthClient)
		client.On("TraceFilter", mock.Anything, req).Return([]node.Trace{}, nil).Once()

		outcome := ScanAddress(context.Background(), client, pool, rng)
		assert.Equal(t, StatusEmpty, outcome.Status)
		assert.Nil(t, outcome.Traces)
	})

	t.Run("Fault", func(t *testing.T) {
		client := new(mockEthClient)
		rpcErr := errors.New("429 Too Many Requests")
		client.On("TraceFilter", mock.Anything, req).Return(nil, rpcErr).Once()

		outcome := ScanAddress(context.Background(), client, pool, rng)
		assert.Equal(t, StatusFault, outcome.Status)
		assert.Equal(t, "fault", outcome.Status.String())
		assert.ErrorIs(t, outcome.Err, rpcErr)
		assert.Nil(t, outcome.Traces)
	})
}

/* -------------------------------------------------------------------------- */
/*                                 Orchestrator                               */
/* -------------------------------------------------------------------------- */

func TestRunNoActivity(t *testing.T) {
	targets := []common.Address{pool, router, alice}
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(50), nil).Once()
	client.On("TraceFilter", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Times(len(targets))

	var out bytes.Buffer
	rep, err := NewScanner(newTestConfig(10, targets...), client, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rep.Results)
	assert.Equal(t, 3, rep.Targets)
	assert.Equal(t, 3, rep.Faults)
	assert.Equal(t, 0, rep.Active())
	assert.Contains(t, out.String(), "Scanning 3 addresses from block 40 to 50")
	assert.Contains(t, out.String(), "\r[3/3] Scanning...")
	client.AssertExpectations(t)
}

func TestRunQueriesResolvedRange(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(1_000), nil).Once()
	want := node.NewToAddressFilter(pool, big.NewInt(900), big.NewInt(1_000))
	client.On("TraceFilter", mock.Anything, want).Return(nil, nil).Once()

	rep, err := NewScanner(newTestConfig(100, pool), client, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(900), rep.Range.From.Int64())
	assert.Equal(t, int64(1_000), rep.Range.To.Int64())
	client.AssertExpectations(t)
}

func TestRunRecordsCounts(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(1_000), nil).Once()
	client.On("TraceFilter", mock.Anything, mock.Anything).
		Return(tracesFrom(pool, alice, bob, alice, carol, alice), nil).Once()
	client.On("CodeAt", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	rep, err := NewScanner(newTestConfig(100, pool), client, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)

	res := rep.Results[0]
	assert.Equal(t, pool, res.Address)
	assert.Equal(t, 5, res.TraceCount)
	assert.Equal(t, 3, res.UniqueCallers)
	assert.Equal(t, 3, res.Callers[alice].Count)
}

func TestRunContinuesAfterScanFault(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(1_000), nil).Once()
	client.On("TraceFilter", mock.Anything, node.NewToAddressFilter(pool, big.NewInt(900), big.NewInt(1_000))).
		Return(nil, errors.New("connection reset by peer")).Once()
	client.On("TraceFilter", mock.Anything, node.NewToAddressFilter(router, big.NewInt(900), big.NewInt(1_000))).
		Return(tracesFrom(router, alice), nil).Once()
	client.On("CodeAt", mock.Anything, alice, mock.Anything).Return(contractCode, nil).Once()

	rep, err := NewScanner(newTestConfig(100, pool, router), client, &bytes.Buffer{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, router, rep.Results[0].Address)
	assert.True(t, rep.Results[0].Callers[alice].IsContract)
	assert.Equal(t, 1, rep.Faults)
	client.AssertExpectations(t)
}

func TestRunAbortsOnClassificationError(t *testing.T) {
	client := new(mockEthClient)
	rpcErr := errors.New("missing trie node")
	client.On("BlockNumber", mock.Anything).Return(uint64(1_000), nil).Once()
	client.On("TraceFilter", mock.Anything, mock.Anything).Return(tracesFrom(pool, alice), nil).Once()
	client.On("CodeAt", mock.Anything, alice, mock.Anything).Return(nil, rpcErr).Once()

	_, err := NewScanner(newTestConfig(100, pool, router), client, &bytes.Buffer{}).Run(context.Background())
	assert.ErrorIs(t, err, rpcErr)
	client.AssertNumberOfCalls(t, "TraceFilter", 1)
}

func TestRunAbortsWhenHeadUnavailable(t *testing.T) {
	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("no route to host")).Once()

	rep, err := NewScanner(newTestConfig(100, pool), client, &bytes.Buffer{}).Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, rep)
	client.AssertNotCalled(t, "TraceFilter", mock.Anything, mock.Anything)
}

func TestRunStopsWhenCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := new(mockEthClient)
	client.On("BlockNumber", mock.Anything).Return(uint64(1_000), nil).Once()
	client.On("TraceFilter", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, nil).Once()

	cfg := newTestConfig(100, pool, router)
	cfg.Chain.RequestDelay = time.Hour

	_, err := NewScanner(cfg, client, &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNumberOfCalls(t, "TraceFilter", 1)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
