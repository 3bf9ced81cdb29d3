package loader

import (
	"os"
	"strings"
	"time"

	"github.com/ammcap/Ammlytics/types"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type TokenConfig struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`

	// Quote tags the USD quote-currency leg. Resolved here, at
	// registration, so pricing never string-matches symbols later.
	Quote bool `json:"quote,omitempty"`

	// RewardCreditPercent defaults to 100; 50 for vesting claim tokens.
	RewardCreditPercent int `json:"reward_credit_percent,omitempty"`

	// PricePool is the pool this token is priced from, when it has one.
	PricePool string `json:"price_pool,omitempty"`

	// FeedID routes the token to the external quote feed instead.
	FeedID string `json:"feed_id,omitempty"`
}

type PoolConfig struct {
	Token0  string `json:"token0"`
	Token1  string `json:"token1"`
	Address string `json:"address"`
}

type ChainConfig struct {
	ChainID            int           `json:"chain_id"`
	RPCEndpoint        string        `json:"rpc"`
	NftManager         string        `json:"nft_manager"`
	Voter              string        `json:"voter"`
	PriceFeedURL       string        `json:"price_feed_url,omitempty"`
	MintLookbackBlocks uint64        `json:"mint_lookback_blocks,omitempty"`
	PriceCacheTTLSecs  int           `json:"price_cache_ttl_secs,omitempty"`
	KnownPools         []PoolConfig  `json:"known_pools"`
	KnownTokens        []TokenConfig `json:"known_tokens"`
}

const (
	defaultMintLookbackBlocks = 2_000_000
	defaultPriceCacheTTLSecs  = 60
)

func LoadChainConfig(path string) ChainConfig {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read chain config")
	}

	var config ChainConfig
	err = json.Unmarshal(jsonData, &config)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to parse chain config")
	}

	if rpcURL := os.Getenv("RPC_URL"); rpcURL != "" {
		config.RPCEndpoint = rpcURL
	}
	if config.MintLookbackBlocks == 0 {
		config.MintLookbackBlocks = defaultMintLookbackBlocks
	}
	if config.PriceCacheTTLSecs == 0 {
		config.PriceCacheTTLSecs = defaultPriceCacheTTLSecs
	}
	return config
}

func (c *ChainConfig) PriceCacheTTL() time.Duration {
	return time.Duration(c.PriceCacheTTLSecs) * time.Second
}

// PoolForPair looks up the registered pool for a token pair, in either
// order.
func (c *ChainConfig) PoolForPair(token0, token1 types.EthAddress) (types.EthAddress, bool) {
	for _, pool := range c.KnownPools {
		t0 := normalizeAddr(pool.Token0)
		t1 := normalizeAddr(pool.Token1)
		if (t0 == token0 && t1 == token1) || (t0 == token1 && t1 == token0) {
			return normalizeAddr(pool.Address), true
		}
	}
	return "", false
}

func (c *ChainConfig) TokenByAddress(token types.EthAddress) (TokenConfig, bool) {
	for _, tc := range c.KnownTokens {
		if normalizeAddr(tc.Address) == token {
			return tc, true
		}
	}
	return TokenConfig{}, false
}

// PricePoolFor resolves the pool a token's USD price is read from.
func (c *ChainConfig) PricePoolFor(token types.EthAddress) (types.EthAddress, bool) {
	tc, ok := c.TokenByAddress(token)
	if !ok || tc.PricePool == "" {
		return "", false
	}
	return normalizeAddr(tc.PricePool), true
}

// FeedIdFor resolves the external feed id for tokens with no on-chain pool.
func (c *ChainConfig) FeedIdFor(token types.EthAddress) (string, bool) {
	tc, ok := c.TokenByAddress(token)
	if !ok || tc.FeedID == "" {
		return "", false
	}
	return tc.FeedID, true
}

func normalizeAddr(addr string) types.EthAddress {
	return types.EthAddress(strings.ToLower(addr))
}
