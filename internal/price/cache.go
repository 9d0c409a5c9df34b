package price

import (
	"sync"
	"time"

	"github.com/mtlprog/cexstat/internal/domain"
)

// DefaultCacheTTL is used when no positive TTL is configured.
const DefaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	price     domain.TickerPrice
	expiresAt time.Time
}

// priceCache holds ticker prices keyed by trading pair symbol.
type priceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newPriceCache(ttl time.Duration) *priceCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &priceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *priceCache) get(symbol string) (domain.TickerPrice, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[symbol]
	if !ok || c.now().After(entry.expiresAt) {
		return domain.TickerPrice{}, false
	}
	return entry.price, true
}

func (c *priceCache) set(prices []domain.TickerPrice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	for _, p := range prices {
		c.entries[p.Symbol] = cacheEntry{price: p, expiresAt: expiresAt}
	}
}
