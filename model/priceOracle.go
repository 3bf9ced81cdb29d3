package model

import (
	"github.com/ammcap/Ammlytics/cache"
	"github.com/ammcap/Ammlytics/loader"
	"github.com/ammcap/Ammlytics/types"
	"github.com/cockroachdb/apd/v2"
	"github.com/rs/zerolog/log"
)

// PriceOracle resolves token USD prices. The quote currency itself pins at
// 1.0; other tokens route through their registered price pool, or the
// external feed when no pool exists. Pool quotes live in a TTL cache keyed
// per pool, so one stale pair never invalidates the rest.
type PriceOracle struct {
	chain  *loader.OnChainLoader
	feed   *loader.PriceFeed
	tokens *TokenDirectory
	quotes *cache.TTLMap[types.EthAddress, *apd.Decimal]
}

func NewPriceOracle(chain *loader.OnChainLoader, feed *loader.PriceFeed,
	tokens *TokenDirectory, memCache *cache.MemoryCache) *PriceOracle {
	return &PriceOracle{
		chain:  chain,
		feed:   feed,
		tokens: tokens,
		quotes: memCache.PoolQuotes(),
	}
}

// TokenUsdPrice resolves one token's USD price, or a PriceUnresolved error
// when no route exists. Callers decide whether an unresolved price is
// fatal; most report fields degrade gracefully instead.
func (o *PriceOracle) TokenUsdPrice(token types.EthAddress) (*apd.Decimal, error) {
	meta := o.tokens.Metadata(token)
	if meta.IsQuote {
		return oneDec(), nil
	}

	if pool, ok := o.chain.Cfg.PricePoolFor(token); ok {
		return o.PoolUsdPrice(pool)
	}

	if feedId, ok := o.chain.Cfg.FeedIdFor(token); ok {
		if o.feed == nil {
			return nil, types.Failf(types.PriceUnresolved, "no price feed configured for %s", meta.Symbol)
		}
		return o.feed.UsdPrice(feedId)
	}

	return nil, types.Failf(types.PriceUnresolved, "no price route for token %s", meta.Symbol)
}

// PoolUsdPrice derives the USD price of a pool's non-quote leg. The
// concentrated slot0 read is tried first; pools without one fall back to
// constant-product reserves.
func (o *PriceOracle) PoolUsdPrice(pool types.EthAddress) (*apd.Decimal, error) {
	if cached, ok := o.quotes.Lookup(pool); ok {
		return cached, nil
	}

	price, token0, token1, err := o.rawPoolPrice(pool)
	if err != nil {
		return nil, err
	}

	usd, err := o.orientToQuote(price, token0, token1)
	if err != nil {
		return nil, err
	}

	o.quotes.Insert(pool, usd)
	return usd, nil
}

// rawPoolPrice reads the pool's token0 price denominated in token1.
func (o *PriceOracle) rawPoolPrice(pool types.EthAddress) (*apd.Decimal, types.EthAddress, types.EthAddress, error) {
	slot, slotErr := o.chain.SlotPrice(pool)
	if slotErr == nil {
		m0 := o.tokens.Metadata(slot.Token0)
		m1 := o.tokens.Metadata(slot.Token1)
		price, err := PriceOfSqrtX96(slot.SqrtPriceX96, m0.Decimals, m1.Decimals)
		if err != nil {
			return nil, "", "", types.Fail(types.ArithmeticDegenerate, err)
		}
		return price, slot.Token0, slot.Token1, nil
	}

	log.Debug().Err(slotErr).Str("pool", string(pool)).Msg("No slot0, trying reserves")

	reserves, err := o.chain.Reserves(pool)
	if err != nil {
		return nil, "", "", types.Failf(types.PriceUnresolved, "pool %s unreadable: %w", pool, err)
	}
	if reserves.Reserve0.Sign() == 0 {
		return nil, "", "", types.Failf(types.PriceUnresolved, "pool %s has empty reserves", pool)
	}

	m0 := o.tokens.Metadata(reserves.Token0)
	m1 := o.tokens.Metadata(reserves.Token1)

	adj0, err := AdjustedAmount(reserves.Reserve0, m0.Decimals)
	if err != nil {
		return nil, "", "", types.Fail(types.ArithmeticDegenerate, err)
	}
	adj1, err := AdjustedAmount(reserves.Reserve1, m1.Decimals)
	if err != nil {
		return nil, "", "", types.Fail(types.ArithmeticDegenerate, err)
	}

	price := new(apd.Decimal)
	if _, err := dctx.Quo(price, adj1, adj0); err != nil {
		return nil, "", "", types.Fail(types.ArithmeticDegenerate, err)
	}
	return price, reserves.Token0, reserves.Token1, nil
}

// orientToQuote flips the token0-in-token1 price into a USD price using
// the quote-currency tag of either leg.
func (o *PriceOracle) orientToQuote(price *apd.Decimal, token0, token1 types.EthAddress) (*apd.Decimal, error) {
	m0 := o.tokens.Metadata(token0)
	m1 := o.tokens.Metadata(token1)

	if m1.IsQuote {
		return price, nil
	}
	if m0.IsQuote {
		if price.Sign() == 0 {
			return nil, types.Failf(types.ArithmeticDegenerate, "zero price in pool %s/%s", m0.Symbol, m1.Symbol)
		}
		inverse := new(apd.Decimal)
		if _, err := dctx.Quo(inverse, oneDec(), price); err != nil {
			return nil, types.Fail(types.ArithmeticDegenerate, err)
		}
		return inverse, nil
	}
	return nil, types.Failf(types.PriceUnresolved, "neither %s nor %s is a quote currency", m0.Symbol, m1.Symbol)
}
