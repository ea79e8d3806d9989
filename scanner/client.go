package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/anyswap/CrossChain-Bridge/common/hexutil"
	"github.com/anyswap/CrossChain-Bridge/log"
	"github.com/anyswap/CrossChain-Bridge/rpc/client"
	"github.com/fsn-dev/fsn-go-sdk/efsn/ethclient"
)

var (
	errBlockNotYetProduced = errors.New("block not yet produced")
	errMalformedBlock      = errors.New("malformed block result")
)

// blockTxHashes hashes only view of a block
type blockTxHashes struct {
	Hash         string   `json:"hash"`
	Transactions []string `json:"transactions"`
}

type blockFetcher interface {
	GetBlockTxHashes(height uint64) (*blockTxHashes, error)
	GetLatestBlockNumber() (uint64, error)
}

type rpcBlockFetcher struct {
	gateway string
	ethcli  *ethclient.Client
	ctx     context.Context
}

// GetBlockTxHashes call eth_getBlockByNumber without full tx objects.
// A nil result without error means the height is beyond the chain tip.
// A result without the transactions field is unusable.
func (f *rpcBlockFetcher) GetBlockTxHashes(height uint64) (*blockTxHashes, error) {
	var result *blockTxHashes
	err := client.RPCPost(&result, f.gateway, "eth_getBlockByNumber", hexutil.EncodeUint64(height), false)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errBlockNotYetProduced
	}
	if result.Transactions == nil {
		return nil, errMalformedBlock
	}
	return result, nil
}

// GetLatestBlockNumber get the chain tip height
func (f *rpcBlockFetcher) GetLatestBlockNumber() (uint64, error) {
	header, err := f.ethcli.HeaderByNumber(f.ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

func (scanner *txDupScanner) initClient() {
	ethcli, err := ethclient.Dial(scanner.gateway)
	if err != nil {
		log.Fatal("ethclient.Dail failed", "gateway", scanner.gateway, "err", err)
	}
	log.Info("ethclient.Dail gateway success", "gateway", scanner.gateway)

	if scanner.networkID != 0 {
		scanner.verifyNetworkID(ethcli)
	}

	scanner.client = &rpcBlockFetcher{
		gateway: scanner.gateway,
		ethcli:  ethcli,
		ctx:     scanner.ctx,
	}
}

func (scanner *txDupScanner) verifyNetworkID(ethcli *ethclient.Client) {
	netID, err := ethcli.NetworkID(scanner.ctx)
	for i := 1; i < scanner.rpcRetryCount && err != nil; i++ {
		time.Sleep(scanner.rpcInterval)
		netID, err = ethcli.NetworkID(scanner.ctx)
	}
	if err != nil {
		log.Fatal("get network ID failed", "gateway", scanner.gateway, "err", err)
	}
	if netID.Uint64() != scanner.networkID {
		log.Fatal("gateway network ID mismatch", "have", netID, "want", scanner.networkID)
	}
	log.Info("check network ID success", "networkID", netID)
}
