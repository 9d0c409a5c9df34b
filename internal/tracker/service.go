// Package tracker gathers account data from the exchange and turns it into
// a valued portfolio. The result of the last refresh is kept in memory for
// drill-down queries.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mtlprog/cexstat/internal/domain"
	"github.com/mtlprog/cexstat/internal/portfolio"
)

// ErrHoldingNotFound is returned when an asset is not part of the current portfolio.
var ErrHoldingNotFound = errors.New("holding not found")

// DefaultStableAssets are left out of cost-basis tracking.
var DefaultStableAssets = []string{"USDT", "USDC", "BUSD"}

// DefaultConcurrency bounds the number of parallel history requests.
const DefaultConcurrency = 8

// Exchange defines the account history API subset needed by Service.
type Exchange interface {
	AccountBalances(ctx context.Context) ([]domain.Balance, error)
	EarnBalances(ctx context.Context) ([]domain.Balance, error)
	AllTrades(ctx context.Context, symbol string) ([]domain.RawTrade, error)
	AutoInvestHistory(ctx context.Context) ([]domain.RawAutoInvestTransaction, error)
	DividendHistory(ctx context.Context) ([]domain.RawDividend, error)
}

// PriceService defines the price lookup interface.
type PriceService interface {
	Prices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error)
}

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	StableAssets []string
	Concurrency  int
}

type snapshot struct {
	portfolio         domain.PortfolioData
	tradesBySymbol    map[string][]domain.RawTrade
	autoInvestByAsset map[string][]domain.RawAutoInvestTransaction
	dividendsByAsset  map[string][]domain.RawDividend
	refreshedAt       time.Time
}

// Service orchestrates the portfolio refresh pipeline.
type Service struct {
	exchange    Exchange
	prices      PriceService
	calc        *portfolio.Calculator
	stable      map[string]bool
	concurrency int
	now         func() time.Time

	mu   sync.RWMutex
	last *snapshot
}

// NewService creates a new tracker Service. All dependencies are required.
func NewService(exchange Exchange, prices PriceService, calc *portfolio.Calculator, opts Options) *Service {
	if exchange == nil {
		panic("tracker.NewService: exchange is nil")
	}
	if prices == nil {
		panic("tracker.NewService: prices is nil")
	}
	if calc == nil {
		panic("tracker.NewService: calculator is nil")
	}

	stable := opts.StableAssets
	if len(stable) == 0 {
		stable = DefaultStableAssets
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Service{
		exchange: exchange,
		prices:   prices,
		calc:     calc,
		stable: lo.SliceToMap(stable, func(s string) (string, bool) {
			return strings.ToUpper(s), true
		}),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Refresh fetches balances, history and prices, and rebuilds the portfolio.
//
// Spot balances and prices are required. Earn balances, auto-invest and
// dividend history are best effort, and a symbol whose trade history cannot
// be fetched is left out of pricing. The returned time is when the result
// was stored.
func (s *Service) Refresh(ctx context.Context) (domain.PortfolioData, time.Time, error) {
	spot, err := s.exchange.AccountBalances(ctx)
	if err != nil {
		return domain.PortfolioData{}, time.Time{}, fmt.Errorf("fetching spot balances: %w", err)
	}

	earn, err := s.exchange.EarnBalances(ctx)
	if err != nil {
		slog.Warn("earn balances unavailable, using spot only", "error", err)
		earn = nil
	}

	balances := mergeBalances(spot, earn)
	assets := tradedAssets(balances, s.stable)
	if len(assets) == 0 {
		snap := s.store(s.calc.BuildPortfolio(balances, nil, nil, nil), nil, nil, nil)
		return snap.portfolio, snap.refreshedAt, nil
	}

	symbols := lo.Map(assets, func(b domain.Balance, _ int) string {
		return s.calc.Symbol(b.Asset)
	})
	tradesBySymbol, autoInvest, dividends := s.fetchHistory(ctx, symbols)
	if err := ctx.Err(); err != nil {
		return domain.PortfolioData{}, time.Time{}, err
	}

	autoInvestByAsset := lo.GroupBy(autoInvest, func(tx domain.RawAutoInvestTransaction) string {
		return tx.TargetAsset
	})
	dividendsByAsset := lo.GroupBy(dividends, func(d domain.RawDividend) string {
		return d.Asset
	})

	prices, err := s.prices.Prices(ctx, validSymbols(symbols, tradesBySymbol, autoInvest, s.calc))
	if err != nil {
		return domain.PortfolioData{}, time.Time{}, fmt.Errorf("fetching prices: %w", err)
	}

	data := s.calc.BuildPortfolio(balances, tradesBySymbol, autoInvestByAsset, prices)
	slog.Info("portfolio refreshed",
		"balances", len(balances),
		"symbols", len(tradesBySymbol),
		"autoInvest", len(autoInvest),
		"dividends", len(dividends),
		"holdings", len(data.Holdings),
		"totalValue", data.TotalCurrentValue.StringFixed(2),
	)
	snap := s.store(data, tradesBySymbol, autoInvestByAsset, dividendsByAsset)
	return snap.portfolio, snap.refreshedAt, nil
}

// fetchHistory requests per-symbol trades, auto-invest history and dividends
// concurrently. Failures are logged and yield no data for that part.
func (s *Service) fetchHistory(ctx context.Context, symbols []string) (
	map[string][]domain.RawTrade, []domain.RawAutoInvestTransaction, []domain.RawDividend,
) {
	var mu sync.Mutex
	tradesBySymbol := make(map[string][]domain.RawTrade, len(symbols))
	var autoInvest []domain.RawAutoInvestTransaction
	var dividends []domain.RawDividend

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	g.Go(func() error {
		txs, err := s.exchange.AutoInvestHistory(ctx)
		if err != nil {
			slog.Warn("auto-invest history unavailable", "error", err)
			return nil
		}
		mu.Lock()
		autoInvest = txs
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		divs, err := s.exchange.DividendHistory(ctx)
		if err != nil {
			slog.Warn("earn rewards unavailable", "error", err)
			return nil
		}
		mu.Lock()
		dividends = divs
		mu.Unlock()
		return nil
	})

	for _, symbol := range symbols {
		g.Go(func() error {
			trades, err := s.exchange.AllTrades(ctx, symbol)
			if err != nil {
				slog.Warn("trade history unavailable, symbol skipped", "symbol", symbol, "error", err)
				return nil
			}
			mu.Lock()
			tradesBySymbol[symbol] = trades
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return tradesBySymbol, autoInvest, dividends
}

// validSymbols lists the pairs worth pricing: every symbol whose trade
// history was fetched, then the pair of every auto-invest target asset.
func validSymbols(
	symbols []string,
	tradesBySymbol map[string][]domain.RawTrade,
	autoInvest []domain.RawAutoInvestTransaction,
	calc *portfolio.Calculator,
) []string {
	valid := lo.Filter(symbols, func(sym string, _ int) bool {
		_, ok := tradesBySymbol[sym]
		return ok
	})
	for _, tx := range autoInvest {
		if tx.TargetAsset == "" || tx.TargetAsset == calc.QuoteAsset() {
			continue
		}
		valid = append(valid, calc.Symbol(tx.TargetAsset))
	}
	return lo.Uniq(valid)
}

func (s *Service) store(
	data domain.PortfolioData,
	trades map[string][]domain.RawTrade,
	autoInvest map[string][]domain.RawAutoInvestTransaction,
	dividends map[string][]domain.RawDividend,
) *snapshot {
	snap := &snapshot{
		portfolio:         data,
		tradesBySymbol:    trades,
		autoInvestByAsset: autoInvest,
		dividendsByAsset:  dividends,
		refreshedAt:       s.now(),
	}
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
	return snap
}

func (s *Service) snapshot(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return last, nil
	}

	if _, _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, nil
}

// Portfolio returns the last portfolio and when it was refreshed,
// refreshing first if there is none.
func (s *Service) Portfolio(ctx context.Context) (domain.PortfolioData, time.Time, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.PortfolioData{}, time.Time{}, err
	}
	return snap.portfolio, snap.refreshedAt, nil
}

// Holding returns the drill-down of one held asset from the last refresh.
func (s *Service) Holding(ctx context.Context, asset string) (domain.HoldingDetail, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.HoldingDetail{}, err
	}

	asset = strings.ToUpper(asset)
	h, ok := lo.Find(snap.portfolio.Holdings, func(h domain.Holding) bool {
		return h.Asset == asset
	})
	if !ok {
		return domain.HoldingDetail{}, fmt.Errorf("%w: %s", ErrHoldingNotFound, asset)
	}

	return s.calc.Detail(h,
		snap.tradesBySymbol[h.Symbol],
		snap.autoInvestByAsset[asset],
		snap.dividendsByAsset[asset],
	), nil
}
