package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

const envVarPrefix = "SCANNER"

func prefixEnvVars(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var (
	RpcUrlFlag = &cli.StringFlag{
		Name:     "rpc-url",
		Usage:    "HTTP or WebSocket endpoint of a node exposing the trace_ API",
		EnvVars:  append([]string{"RPC_URL"}, prefixEnvVars("RPC_URL")...),
		Required: true,
	}
	TargetsFlag = &cli.StringSliceFlag{
		Name:    "targets",
		Usage:   "Addresses to scan, comma separated",
		EnvVars: prefixEnvVars("TARGETS"),
	}
	TargetsFileFlag = &cli.StringFlag{
		Name:      "targets-file",
		Usage:     "File listing addresses to scan (YAML list, YAML 'targets' key, or one address per line)",
		EnvVars:   prefixEnvVars("TARGETS_FILE"),
		TakesFile: true,
	}
	ScanBlocksFlag = &cli.Uint64Flag{
		Name:    "scan-blocks",
		Usage:   "Number of blocks behind the chain head to scan",
		EnvVars: prefixEnvVars("SCAN_BLOCKS"),
		Value:   7200,
	}
	DelayFlag = &cli.DurationFlag{
		Name:    "delay",
		Usage:   "Pause between two scanned addresses",
		EnvVars: prefixEnvVars("DELAY"),
		Value:   100 * time.Millisecond,
	}
	TopFlag = &cli.IntFlag{
		Name:    "top",
		Usage:   "Number of callers reported per address",
		EnvVars: prefixEnvVars("TOP"),
		Value:   3,
	}
	RpcTimeoutFlag = &cli.DurationFlag{
		Name:    "rpc.timeout",
		Usage:   "Timeout of a single RPC request",
		EnvVars: prefixEnvVars("RPC_TIMEOUT"),
		Value:   100 * time.Second,
	}
	RpcRateFlag = &cli.Float64Flag{
		Name:    "rpc.rate",
		Usage:   "Maximum RPC requests per second, 0 for no cap",
		EnvVars: prefixEnvVars("RPC_RATE"),
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "Log level: trace, debug, info, warn, error, crit",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Value:   "info",
	}
)

var requiredFlags = []cli.Flag{
	RpcUrlFlag,
}

var optionalFlags = []cli.Flag{
	TargetsFlag,
	TargetsFileFlag,
	ScanBlocksFlag,
	DelayFlag,
	TopFlag,
	RpcTimeoutFlag,
	RpcRateFlag,
	LogLevelFlag,
}

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

var Flags []cli.Flag
