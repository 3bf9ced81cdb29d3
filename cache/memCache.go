package cache

import (
	"time"

	"github.com/ammcap/Ammlytics/types"
	"github.com/cockroachdb/apd/v2"
)

// MemoryCache is the process cache shared across report requests: immutable
// token metadata plus TTL-bound pool price quotes. It is passed explicitly
// to every consumer rather than living in package globals.
type MemoryCache struct {
	tokenMetadata RWLockMap[types.EthAddress, types.TokenMetadata]
	poolQuotes    *TTLMap[types.EthAddress, *apd.Decimal]
}

func New(quoteTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		tokenMetadata: newRwLockMap[types.EthAddress, types.TokenMetadata](),
		poolQuotes:    NewTTLMap[types.EthAddress, *apd.Decimal](quoteTTL),
	}
}

func (c *MemoryCache) RetrieveTokenMetadata(token types.EthAddress) (types.TokenMetadata, bool) {
	return c.tokenMetadata.lookup(token)
}

func (c *MemoryCache) StoreTokenMetadata(token types.EthAddress, metadata types.TokenMetadata) {
	c.tokenMetadata.insert(token, metadata)
}

func (c *MemoryCache) PoolQuotes() *TTLMap[types.EthAddress, *apd.Decimal] {
	return c.poolQuotes
}
