package scanner

import (
	"context"
	"time"

	"github.com/anyswap/CrossChain-Bridge/cmd/utils"
	"github.com/anyswap/CrossChain-Bridge/log"
	"github.com/jowenshaw/txdupscan/params"
	"github.com/jowenshaw/txdupscan/tools"
	"github.com/urfave/cli/v2"
)

var (
	startHeightFlag = &cli.Uint64Flag{
		Name:  "start",
		Usage: "start height (inclusive), overrides config file",
	}

	cacheSizeFlag = &cli.IntFlag{
		Name:  "cacheSize",
		Usage: "max count of cached seen tx hashes, overrides config file",
	}

	networkIDFlag = &cli.Uint64Flag{
		Name:  "netid",
		Usage: "expected network ID of the gateway (0 to disable the check), overrides config file",
	}

	// ScanTxDupCommand scan duplicate tx hashes on eth like blockchain
	ScanTxDupCommand = &cli.Command{
		Action:    scanTxDup,
		Name:      "scantxdup",
		Usage:     "scan duplicate transaction hashes",
		ArgsUsage: " ",
		Description: `
scan blocks one height at a time from a start height upwards and verify
no transaction hash appears twice, exit loudly on the first duplicate
`,
		Flags: []cli.Flag{
			utils.ConfigFileFlag,
			utils.GatewayFlag,
			networkIDFlag,
			startHeightFlag,
			cacheSizeFlag,
		},
	}
)

type txDupScanner struct {
	gateway   string
	networkID uint64

	startHeight uint64
	cacheSize   int

	client blockFetcher
	ctx    context.Context

	rpcInterval   time.Duration
	rpcRetryCount int

	// scan state, mutated only by the scan loop itself
	currentHeight uint64
	knownTip      uint64
	totalTxSeen   uint64

	cachedSeenTxs  *tools.CachedSeenTxs
	blockSummaries *tools.SummaryRing
}

func scanTxDup(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	config := params.LoadConfig(utils.GetConfigFilePath(ctx))
	go params.WatchAndReloadScanConfig()

	if ctx.IsSet(utils.GatewayFlag.Name) {
		config.Gateway.APIAddress = ctx.String(utils.GatewayFlag.Name)
	}
	if ctx.IsSet(networkIDFlag.Name) {
		config.Gateway.NetworkID = ctx.Uint64(networkIDFlag.Name)
	}
	if ctx.IsSet(startHeightFlag.Name) {
		config.Scan.StartHeight = ctx.Uint64(startHeightFlag.Name)
	}
	if ctx.IsSet(cacheSizeFlag.Name) {
		config.Scan.MaxCacheEntries = ctx.Int(cacheSizeFlag.Name)
	}

	scanner := &txDupScanner{
		ctx:           context.Background(),
		rpcInterval:   1 * time.Second,
		rpcRetryCount: 3,
	}
	scanner.gateway = config.Gateway.APIAddress
	scanner.networkID = config.Gateway.NetworkID
	scanner.startHeight = config.Scan.StartHeight
	scanner.cacheSize = config.Scan.MaxCacheEntries

	log.Info("get arguments success",
		"gateway", scanner.gateway,
		"networkID", scanner.networkID,
		"start", scanner.startHeight,
		"cacheSize", scanner.cacheSize,
		"backoff", params.GetBackoffInterval(),
	)

	scanner.verifyOptions()
	scanner.initClient()
	scanner.run()
	return nil
}

func (scanner *txDupScanner) verifyOptions() {
	if scanner.gateway == "" {
		log.Fatal("must specify gateway address")
	}
	cache, err := tools.NewCachedSeenTxs(scanner.cacheSize)
	if err != nil {
		log.Fatal("wrong cache size", "cacheSize", scanner.cacheSize, "err", err)
	}
	scanner.cachedSeenTxs = cache
	scanner.blockSummaries = tools.NewSummaryRing(summaryRingCapacity)
}
