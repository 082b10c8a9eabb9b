package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/owicyfa/Transactions-scanner/flags"
)

var (
	ErrMissingRpcUrl = errors.New("rpc url is required")
	ErrInvalidTop    = errors.New("top must be at least 1")
)

type Config struct {
	Chain  ChainConfig
	Report ReportConfig
}

type ChainConfig struct {
	ChainRpcUrl    string
	ScanBlocks     uint64
	Targets        []common.Address
	RequestDelay   time.Duration
	RequestTimeout time.Duration
	RateLimit      float64
}

type ReportConfig struct {
	TopCallers int
}

func LoadConfig(cliCtx *cli.Context) (Config, error) {
	cfg := NewConfig(cliCtx)

	targets, err := ParseTargets(cliCtx.StringSlice(flags.TargetsFlag.Name))
	if err != nil {
		return Config{}, err
	}
	if path := cliCtx.String(flags.TargetsFileFlag.Name); path != "" {
		fromFile, err := LoadTargetsFile(path)
		if err != nil {
			return Config{}, err
		}
		targets = append(targets, fromFile...)
	}
	cfg.Chain.Targets = targets

	if err := cfg.Check(); err != nil {
		return Config{}, err
	}
	log.Info("loaded chain config", "targets", len(cfg.Chain.Targets), "scanBlocks", cfg.Chain.ScanBlocks)
	return cfg, nil
}

func NewConfig(cliCtx *cli.Context) Config {
	return Config{
		Chain: ChainConfig{
			ChainRpcUrl:    cliCtx.String(flags.RpcUrlFlag.Name),
			ScanBlocks:     cliCtx.Uint64(flags.ScanBlocksFlag.Name),
			RequestDelay:   cliCtx.Duration(flags.DelayFlag.Name),
			RequestTimeout: cliCtx.Duration(flags.RpcTimeoutFlag.Name),
			RateLimit:      cliCtx.Float64(flags.RpcRateFlag.Name),
		},
		Report: ReportConfig{
			TopCallers: cliCtx.Int(flags.TopFlag.Name),
		},
	}
}

func (c Config) Check() error {
	if c.Chain.ChainRpcUrl == "" {
		return ErrMissingRpcUrl
	}
	if c.Report.TopCallers < 1 {
		return ErrInvalidTop
	}
	return nil
}
