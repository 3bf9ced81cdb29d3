package loader

import (
	"math/big"

	"github.com/ammcap/Ammlytics/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// PositionDetails is the on-chain position struct read from the NFT
// manager.
type PositionDetails struct {
	Id               *big.Int
	Token0           types.EthAddress
	Token1           types.EthAddress
	TickSpacing      int
	TickLower        int
	TickUpper        int
	Liquidity        *big.Int
	FeeGrowthInside0 *big.Int
	FeeGrowthInside1 *big.Int
	TokensOwed0      *big.Int
	TokensOwed1      *big.Int
}

func (p PositionDetails) PositionId() types.PositionId {
	return types.PositionId(p.Id.String())
}

// Wallets keep closed positions at the front of the enumeration, so the
// walk runs newest-first and stops after this many consecutive empties.
const consecutiveClosedStop = 5

// WalletPositions enumerates the wallet's position NFTs and returns the
// ones with live liquidity, oldest-first, plus the raw NFT balance. An
// unreadable balance fails the whole report; individual bad positions are
// skipped.
func (c *OnChainLoader) WalletPositions(wallet types.EthAddress) ([]PositionDetails, int, error) {
	nft := types.EthAddress(c.Cfg.NftManager)

	result, err := c.callContractFn("balanceOf", nft, c.nftAbi, nil, addrOf(wallet))
	if err != nil {
		return nil, 0, types.Failf(types.ConnectivityFailure, "wallet balance unreadable: %w", err)
	}
	balance := int(result[0].(*big.Int).Int64())

	active := make([]PositionDetails, 0)
	consecutiveClosed := 0
	for i := balance - 1; i >= 0; i-- {
		idResult, err := c.callContractFn("tokenOfOwnerByIndex", nft, c.nftAbi, nil,
			addrOf(wallet), big.NewInt(int64(i)))
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping unreadable position index")
			continue
		}
		id := idResult[0].(*big.Int)

		pos, err := c.PositionDetails(id)
		if err != nil {
			log.Warn().Err(err).Str("tokenId", id.String()).Msg("Skipping unreadable position")
			continue
		}

		if pos.Liquidity.Sign() > 0 {
			consecutiveClosed = 0
			active = append(active, pos)
		} else {
			consecutiveClosed++
		}
		if consecutiveClosed >= consecutiveClosedStop {
			break
		}
	}

	// Restore chronological order.
	for i, j := 0, len(active)-1; i < j; i, j = i+1, j-1 {
		active[i], active[j] = active[j], active[i]
	}
	return active, balance, nil
}

// PositionDetails reads the position struct for one NFT id.
func (c *OnChainLoader) PositionDetails(id *big.Int) (PositionDetails, error) {
	nft := types.EthAddress(c.Cfg.NftManager)

	result, err := c.callContractFn("positions", nft, c.nftAbi, nil, id)
	if err != nil {
		return PositionDetails{}, err
	}

	return PositionDetails{
		Id:               id,
		Token0:           ethAddrOf(result[0].(common.Address)),
		Token1:           ethAddrOf(result[1].(common.Address)),
		TickSpacing:      int(result[2].(*big.Int).Int64()),
		TickLower:        int(result[3].(*big.Int).Int64()),
		TickUpper:        int(result[4].(*big.Int).Int64()),
		Liquidity:        result[5].(*big.Int),
		FeeGrowthInside0: result[6].(*big.Int),
		FeeGrowthInside1: result[7].(*big.Int),
		TokensOwed0:      result[8].(*big.Int),
		TokensOwed1:      result[9].(*big.Int),
	}, nil
}
