package node

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	defaultDialTimeout = 5 * time.Second

	defaultRequestTimeout = 100 * time.Second
)

type Options struct {
	// RequestTimeout bounds every single RPC call. Zero uses defaultRequestTimeout.
	RequestTimeout time.Duration
	// RateLimit caps outgoing requests per second. Zero or less disables the cap.
	RateLimit float64
}

type myClient struct {
	rpc            RPC
	requestTimeout time.Duration
}

func (m *myClient) timeout() time.Duration {
	if m.requestTimeout > 0 {
		return m.requestTimeout
	}
	return defaultRequestTimeout
}

func (m *myClient) BlockNumber(ctx context.Context) (uint64, error) {
	ctxwt, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	var head hexutil.Uint64
	if err := m.rpc.CallContext(ctxwt, &head, "eth_blockNumber"); err != nil {
		log.Error("Call eth_blockNumber method fail", "err", err)
		return 0, err
	}
	return uint64(head), nil
}

func (m *myClient) TraceFilter(ctx context.Context, req TraceFilterRequest) ([]Trace, error) {
	ctxwt, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	var traces []Trace
	if err := m.rpc.CallContext(ctxwt, &traces, "trace_filter", req); err != nil {
		return nil, err
	}
	return traces, nil
}

func (m *myClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	ctxwt, cancel := context.WithTimeout(ctx, m.timeout())
	defer cancel()

	var code hexutil.Bytes
	if err := m.rpc.CallContext(ctxwt, &code, "eth_getCode", account, toBlockNumArg(blockNumber)); err != nil {
		return nil, err
	}
	return code, nil
}

func (m *myClient) Close() {
	m.rpc.Close()
}

type RPC interface {
	Close()
	CallContext(ctx context.Context, result any, method string, args ...any) error
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

type EthClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	TraceFilter(ctx context.Context, req TraceFilterRequest) ([]Trace, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)

	Close()
}

func NewEthClient(r RPC, opts Options) EthClient {
	if opts.RateLimit > 0 {
		r = NewLimitedRPC(r, rate.NewLimiter(rate.Limit(opts.RateLimit), 1))
	}
	return &myClient{rpc: r, requestTimeout: opts.RequestTimeout}
}

func DialEthClient(ctx context.Context, rpcUrl string, opts Options) (EthClient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(ctx, rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial address (%s): %w", rpcUrl, err)
	}

	return NewEthClient(NewRPC(rpcClient), opts), nil
}

type rpcClient struct {
	rpc *rpc.Client
}

func NewRPC(client *rpc.Client) RPC {
	return &rpcClient{client}
}

func (c *rpcClient) Close() {
	c.rpc.Close()
}

func (c *rpcClient) CallContext(ctx context.Context, result any, method string, args ...any) error {
	err := c.rpc.CallContext(ctx, result, method, args...)
	return err
}

func (c *rpcClient) BatchCallContext(ctx context.Context, b []rpc.BatchElem) error {
	err := c.rpc.BatchCallContext(ctx, b)
	return err
}

// limitedRPC holds every request until the limiter hands out a token.
type limitedRPC struct {
	RPC
	limiter *rate.Limiter
}

func NewLimitedRPC(r RPC, limiter *rate.Limiter) RPC {
	return &limitedRPC{RPC: r, limiter: limiter}
}

func (l *limitedRPC) CallContext(ctx context.Context, result any, method string, args ...any) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(err, "rate limit wait for %s", method)
	}
	return l.RPC.CallContext(ctx, result, method, args...)
}

func (l *limitedRPC) BatchCallContext(ctx context.Context, b []rpc.BatchElem) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limit wait for batch")
	}
	return l.RPC.BatchCallContext(ctx, b)
}

func toBlockNumArg(b *big.Int) string {
	if b == nil {
		return "latest"
	}
	if b.Sign() >= 0 {
		return hexutil.EncodeBig(b)
	}
	return rpc.BlockNumber(b.Int64()).String()
}
