package loader

import (
	"math/big"

	"github.com/ammcap/Ammlytics/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// RewardRead is one pending reward balance read from a gauge.
type RewardRead struct {
	Token  types.EthAddress
	Amount *big.Int
}

// GaugeRewards reads the pending rewards for a position from the gauge
// attached to its pool. A pool with no gauge yields no rewards, which is
// not an error.
func (c *OnChainLoader) GaugeRewards(pool types.EthAddress, id *big.Int) ([]RewardRead, error) {
	voter := types.EthAddress(c.Cfg.Voter)

	gaugeResult, err := c.callContractFn("gaugeForPool", voter, c.voterAbi, nil, addrOf(pool))
	if err != nil {
		return nil, err
	}
	gaugeAddr := gaugeResult[0].(common.Address)
	if gaugeAddr == (common.Address{}) {
		return nil, nil
	}
	gauge := ethAddrOf(gaugeAddr)

	tokensResult, err := c.callContractFn("getRewardTokens", gauge, c.gaugeAbi, nil)
	if err != nil {
		return nil, err
	}
	rewardTokens, ok := tokensResult[0].([]common.Address)
	if !ok {
		return nil, types.Failf(types.DataUnavailable, "malformed reward token list from gauge %s", gauge)
	}

	rewards := make([]RewardRead, 0, len(rewardTokens))
	for _, token := range rewardTokens {
		earnedResult, err := c.callContractFn("earned", gauge, c.gaugeAbi, nil,
			token, id)
		if err != nil {
			log.Warn().Err(err).Str("token", token.Hex()).Str("tokenId", id.String()).
				Msg("Skipping unreadable reward balance")
			continue
		}
		amount := earnedResult[0].(*big.Int)
		if amount.Sign() > 0 {
			rewards = append(rewards, RewardRead{Token: ethAddrOf(token), Amount: amount})
		}
	}
	return rewards, nil
}
