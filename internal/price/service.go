// Package price resolves last-trade prices for trading pairs through a
// short-lived cache in front of the exchange.
package price

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/cexstat/internal/domain"
)

// TickerSource defines the exchange API subset needed by Service.
type TickerSource interface {
	TickerPrices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error)
}

// Service implements cached price lookup.
type Service struct {
	source TickerSource
	cache  *priceCache
}

// NewService creates a new price Service. A non-positive ttl selects DefaultCacheTTL.
func NewService(source TickerSource, ttl time.Duration) *Service {
	if source == nil {
		panic("price.NewService: source is nil")
	}
	return &Service{
		source: source,
		cache:  newPriceCache(ttl),
	}
}

// Prices returns the last price of each symbol, in request order. Only cache
// misses are requested from the exchange. Symbols the exchange does not know
// are absent from the result.
func (s *Service) Prices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error) {
	symbols = lo.Uniq(symbols)

	found := make(map[string]domain.TickerPrice, len(symbols))
	var misses []string
	for _, sym := range symbols {
		if p, ok := s.cache.get(sym); ok {
			found[sym] = p
			continue
		}
		misses = append(misses, sym)
	}

	if len(misses) > 0 {
		fetched, err := s.source.TickerPrices(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("fetching prices for %d symbols: %w", len(misses), err)
		}
		s.cache.set(fetched)
		for _, p := range fetched {
			found[p.Symbol] = p
		}
		slog.Debug("prices fetched", "requested", len(misses), "returned", len(fetched), "cached", len(symbols)-len(misses))
	}

	return lo.FilterMap(symbols, func(sym string, _ int) (domain.TickerPrice, bool) {
		p, ok := found[sym]
		return p, ok
	}), nil
}
