package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ammcap/Ammlytics/types"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	raw := `{
		"chain_id": 146,
		"rpc": "https://rpc.example.org",
		"nft_manager": "0x12E66C8F215DdD5d48d150c8f46aD0c6fB0F4406",
		"voter": "0x9f59398d0a397b2eeb8a6123a6c7295cb0b0062d",
		"known_pools": [
			{
				"token0": "0x0555E30da8f98308EdB960aa94C0Db47230d2B9c",
				"token1": "0x29219dd400f2Bf60E5a23d13Be72B486D4038894",
				"address": "0x8BC2f9e725cbB07c338df4e77c82190119ddd823"
			}
		],
		"known_tokens": [
			{
				"address": "0x0555E30da8f98308EdB960aa94C0Db47230d2B9c",
				"symbol": "WBTC",
				"decimals": 8,
				"price_pool": "0x8BC2f9e725cbB07c338df4e77c82190119ddd823"
			},
			{
				"address": "0x29219dd400f2Bf60E5a23d13Be72B486D4038894",
				"symbol": "USDC",
				"decimals": 6,
				"quote": true
			},
			{
				"address": "0x5555555555555555555555555555555555555555",
				"symbol": "FEED",
				"decimals": 18,
				"feed_id": "feed-token"
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "chain.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadChainConfigDefaults(t *testing.T) {
	cfg := LoadChainConfig(writeTestConfig(t))

	if cfg.ChainID != 146 {
		t.Fatalf("Wrong chain id %d", cfg.ChainID)
	}
	if cfg.MintLookbackBlocks != defaultMintLookbackBlocks {
		t.Fatalf("Lookback default not applied, got %d", cfg.MintLookbackBlocks)
	}
	if cfg.PriceCacheTTL() != time.Duration(defaultPriceCacheTTLSecs)*time.Second {
		t.Fatalf("TTL default not applied, got %v", cfg.PriceCacheTTL())
	}
}

func TestPoolForPairEitherOrder(t *testing.T) {
	cfg := LoadChainConfig(writeTestConfig(t))
	wbtc := types.EthAddress("0x0555e30da8f98308edb960aa94c0db47230d2b9c")
	usdc := types.EthAddress("0x29219dd400f2bf60e5a23d13be72b486d4038894")
	want := types.EthAddress("0x8bc2f9e725cbb07c338df4e77c82190119ddd823")

	pool, ok := cfg.PoolForPair(wbtc, usdc)
	if !ok || pool != want {
		t.Fatalf("Forward lookup failed: %s %v", pool, ok)
	}
	pool, ok = cfg.PoolForPair(usdc, wbtc)
	if !ok || pool != want {
		t.Fatalf("Reversed lookup failed: %s %v", pool, ok)
	}
	if _, ok := cfg.PoolForPair(wbtc, wbtc); ok {
		t.Fatal("Unregistered pair should miss")
	}
}

func TestTokenRegistry(t *testing.T) {
	cfg := LoadChainConfig(writeTestConfig(t))
	usdc := types.EthAddress("0x29219dd400f2bf60e5a23d13be72b486d4038894")
	wbtc := types.EthAddress("0x0555e30da8f98308edb960aa94c0db47230d2b9c")
	feedToken := types.EthAddress("0x5555555555555555555555555555555555555555")

	tc, ok := cfg.TokenByAddress(usdc)
	if !ok || !tc.Quote {
		t.Fatalf("Quote flag lost: %+v %v", tc, ok)
	}

	if _, ok := cfg.PricePoolFor(usdc); ok {
		t.Fatal("USDC should have no price pool")
	}
	pool, ok := cfg.PricePoolFor(wbtc)
	if !ok || pool != "0x8bc2f9e725cbb07c338df4e77c82190119ddd823" {
		t.Fatalf("WBTC price pool lookup failed: %s %v", pool, ok)
	}

	feedId, ok := cfg.FeedIdFor(feedToken)
	if !ok || feedId != "feed-token" {
		t.Fatalf("Feed id lookup failed: %s %v", feedId, ok)
	}
	if _, ok := cfg.FeedIdFor(wbtc); ok {
		t.Fatal("WBTC should have no feed id")
	}
}
