package loader

import (
	"context"
	"math/big"
	"time"

	"github.com/ammcap/Ammlytics/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	solsha3 "github.com/miguelmota/go-solidity-sha3"
)

// MintInfo locates the block a position NFT was minted in.
type MintInfo struct {
	BlockNumber uint64
	Timestamp   time.Time
}

var transferTopic = common.BytesToHash(solsha3.SoliditySHA3(
	[]string{"string"},
	[]interface{}{"Transfer(address,address,uint256)"},
))

// MintEvent scans the NFT manager's Transfer logs for the mint of the
// given position, looking back a bounded window from the chain head.
// Returns nil when no mint log falls inside the window.
func (c *OnChainLoader) MintEvent(owner types.EthAddress, id *big.Int) (*MintInfo, error) {
	client, err := c.ethClient()
	if err != nil {
		return nil, err
	}

	head, err := client.BlockNumber(context.Background())
	if err != nil {
		return nil, types.Fail(types.ConnectivityFailure, err)
	}

	fromBlock := uint64(0)
	if head > c.Cfg.MintLookbackBlocks {
		fromBlock = head - c.Cfg.MintLookbackBlocks
	}

	nftManager := addrOf(types.EthAddress(c.Cfg.NftManager))
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(head),
		Addresses: []common.Address{nftManager},
		Topics: [][]common.Hash{
			{transferTopic},
			{common.Hash{}},
			{common.BytesToHash(addrOf(owner).Bytes())},
			{common.BigToHash(id)},
		},
	}

	logs, err := client.FilterLogs(context.Background(), query)
	if err != nil {
		return nil, types.Fail(types.DataUnavailable, err)
	}
	if len(logs) == 0 {
		return nil, nil
	}

	mintBlock := logs[0].BlockNumber
	header, err := client.HeaderByNumber(context.Background(), new(big.Int).SetUint64(mintBlock))
	if err != nil {
		return nil, types.Fail(types.DataUnavailable, err)
	}

	return &MintInfo{
		BlockNumber: mintBlock,
		Timestamp:   time.Unix(int64(header.Time), 0).UTC(),
	}, nil
}
