package scanner

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anyswap/CrossChain-Bridge/log"
	"github.com/jowenshaw/txdupscan/params"
	"github.com/jowenshaw/txdupscan/tools"
)

// exit status when a duplicate tx hash is found,
// distinguishable from the log.Fatal exits at startup
const duplicateExitCode = 2

const summaryRingCapacity = 100

// DuplicateTxError reports a tx hash recorded at two scan points
type DuplicateTxError struct {
	TxHash        string
	FirstHeight   uint64
	CurrentHeight uint64
}

func (e *DuplicateTxError) Error() string {
	return fmt.Sprintf("duplicate tx hash %v at height %v, first seen at height %v",
		e.TxHash, e.CurrentHeight, e.FirstHeight)
}

func (scanner *txDupScanner) run() {
	go scanner.reportProgress()

	scanner.currentHeight = scanner.startHeight
	scanner.knownTip = scanner.loopGetLatestBlockNumber()
	log.Info("start scan loop job",
		"start", scanner.startHeight,
		"tip", scanner.knownTip,
		"cacheSize", scanner.cacheSize,
	)

	for {
		advanced, dupErr := scanner.scanStep()
		if dupErr != nil {
			log.Error("duplicate transaction hash found",
				"txHash", dupErr.TxHash,
				"firstHeight", dupErr.FirstHeight,
				"currentHeight", dupErr.CurrentHeight,
			)
			os.Exit(duplicateExitCode)
		}
		if !advanced {
			time.Sleep(params.GetBackoffInterval())
		}
	}
}

// scanStep fetch and process the block at the current height.
// The height advances only after the block is fully processed,
// every unsuccessful fetch retries the same height.
func (scanner *txDupScanner) scanStep() (advanced bool, dupErr *DuplicateTxError) {
	block, err := scanner.client.GetBlockTxHashes(scanner.currentHeight)
	switch {
	case err == nil:
		if dupErr = scanner.processBlock(block); dupErr != nil {
			return false, dupErr
		}
		log.Info("scanned block",
			"height", scanner.currentHeight,
			"hash", block.Hash,
			"txs", len(block.Transactions),
			"tip", scanner.knownTip,
			"totalTxSeen", scanner.totalTxSeen,
		)
		scanner.blockSummaries.Add(&tools.BlockSummary{
			Height:    scanner.currentHeight,
			BlockHash: block.Hash,
			TxCount:   len(block.Transactions),
		})
		scanner.currentHeight++
		return true, nil
	case errors.Is(err, errBlockNotYetProduced):
		log.Info("block not yet produced", "height", scanner.currentHeight, "tip", scanner.knownTip)
		scanner.refreshKnownTip()
	case errors.Is(err, errMalformedBlock):
		log.Warn("get block returned no usable result", "height", scanner.currentHeight)
	default:
		log.Warn("get block failed", "height", scanner.currentHeight, "err", err)
	}
	return false, nil
}

func (scanner *txDupScanner) processBlock(block *blockTxHashes) *DuplicateTxError {
	for _, txHash := range block.Transactions {
		firstHeight, duplicate := scanner.cachedSeenTxs.RecordSeenTx(txHash, scanner.currentHeight)
		if duplicate {
			return &DuplicateTxError{
				TxHash:        txHash,
				FirstHeight:   firstHeight,
				CurrentHeight: scanner.currentHeight,
			}
		}
		scanner.totalTxSeen++
	}
	return nil
}

func (scanner *txDupScanner) refreshKnownTip() {
	latest, err := scanner.client.GetLatestBlockNumber()
	if err != nil {
		log.Warn("get latest block number failed", "err", err)
		return
	}
	scanner.knownTip = latest
}

func (scanner *txDupScanner) loopGetLatestBlockNumber() uint64 {
	for {
		latest, err := scanner.client.GetLatestBlockNumber()
		if err == nil {
			log.Info("get latest block number success", "height", latest)
			return latest
		}
		log.Warn("get latest block number failed", "err", err)
		time.Sleep(scanner.rpcInterval)
	}
}

// reportProgress periodically drains the published block summaries and logs
// an aggregate progress line. It only reads published snapshots and never
// touches the scan state owned by the loop.
func (scanner *txDupScanner) reportProgress() {
	for {
		time.Sleep(params.GetReportInterval())
		var blocks, txs int
		var highest uint64
		scanner.blockSummaries.Drain(func(s *tools.BlockSummary) {
			blocks++
			txs += s.TxCount
			if s.Height > highest {
				highest = s.Height
			}
		})
		if blocks == 0 {
			log.Info("scan progress, no block scanned in this round")
			continue
		}
		log.Info("scan progress",
			"blocks", blocks,
			"txs", txs,
			"highest", highest,
			"cacheFlushes", scanner.cachedSeenTxs.Flushes(),
		)
	}
}
