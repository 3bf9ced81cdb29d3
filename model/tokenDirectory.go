package model

import (
	"github.com/ammcap/Ammlytics/cache"
	"github.com/ammcap/Ammlytics/loader"
	"github.com/ammcap/Ammlytics/types"
)

// TokenDirectory resolves token metadata through the process cache. Token
// symbols and decimals are immutable on-chain, so entries never expire.
type TokenDirectory struct {
	chain *loader.OnChainLoader
	cache *cache.MemoryCache
}

func NewTokenDirectory(chain *loader.OnChainLoader, memCache *cache.MemoryCache) *TokenDirectory {
	return &TokenDirectory{chain: chain, cache: memCache}
}

func (d *TokenDirectory) Metadata(token types.EthAddress) types.TokenMetadata {
	if meta, ok := d.cache.RetrieveTokenMetadata(token); ok {
		return meta
	}
	meta := d.chain.FetchTokenMetadata(token)
	d.cache.StoreTokenMetadata(token, meta)
	return meta
}
