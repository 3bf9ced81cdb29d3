package loader

import (
	"fmt"

	"github.com/ammcap/Ammlytics/types"
	"github.com/rs/zerolog/log"
)

// FetchTokenMetadata resolves a token's display and pricing metadata.
// Registered tokens come from the chain config; anything else falls back
// to ERC-20 reads with safe defaults, so an unknown reward token never
// sinks a report.
func (c *OnChainLoader) FetchTokenMetadata(token types.EthAddress) types.TokenMetadata {
	if tc, ok := c.Cfg.TokenByAddress(token); ok {
		credit := tc.RewardCreditPercent
		if credit == 0 {
			credit = types.FullRewardCredit
		}
		return types.TokenMetadata{
			Symbol:              tc.Symbol,
			Decimals:            tc.Decimals,
			IsQuote:             tc.Quote,
			RewardCreditPercent: credit,
		}
	}

	meta := types.TokenMetadata{
		Symbol:              placeholderSymbol(token),
		Decimals:            18,
		RewardCreditPercent: types.FullRewardCredit,
	}

	if result, err := c.callContractFn("symbol", token, c.tokenAbi, nil); err == nil {
		if sym, ok := result[0].(string); ok && sym != "" {
			meta.Symbol = sym
		}
	} else {
		log.Warn().Err(err).Str("token", string(token)).Msg("Token symbol unreadable")
	}

	if result, err := c.callContractFn("decimals", token, c.tokenAbi, nil); err == nil {
		if dec, ok := result[0].(uint8); ok {
			meta.Decimals = int(dec)
		}
	} else {
		log.Warn().Err(err).Str("token", string(token)).Msg("Token decimals unreadable")
	}

	return meta
}

func placeholderSymbol(token types.EthAddress) string {
	s := string(token)
	if len(s) < 6 {
		return fmt.Sprintf("Unknown (%s)", s)
	}
	return fmt.Sprintf("Unknown (%s...)", s[:6])
}
