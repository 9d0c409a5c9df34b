package portfolio

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// SpotBuys returns the spot buy fills of a ledger, newest first.
func SpotBuys(unified []domain.UnifiedTransaction) []domain.UnifiedTransaction {
	buys := lo.Filter(unified, func(tx domain.UnifiedTransaction, _ int) bool {
		return tx.IsSpotBuy()
	})
	sort.SliceStable(buys, func(i, j int) bool {
		return buys[i].Date > buys[j].Date
	})
	return buys
}

// DCATimeline replays spot buys oldest first and records the running average
// cost after each one. Auto-invest purchases and rewards are not part of it.
// An empty result means there is no DCA data.
func DCATimeline(unified []domain.UnifiedTransaction) []domain.DcaPoint {
	buys := SpotBuys(unified)
	timeline := make([]domain.DcaPoint, 0, len(buys))

	totalQty := decimal.Zero
	totalInvested := decimal.Zero
	for i := len(buys) - 1; i >= 0; i-- {
		tx := buys[i]
		totalQty = totalQty.Add(tx.Quantity)
		totalInvested = totalInvested.Add(tx.QuoteAmount)
		timeline = append(timeline, domain.DcaPoint{
			Date:          tx.Date,
			TotalQty:      totalQty,
			TotalInvested: totalInvested,
			AvgCost:       domain.SafeDiv(totalInvested, totalQty),
		})
	}
	return timeline
}

// SummarizeDCA condenses a timeline built from unified. It returns nil when
// the timeline is empty.
func SummarizeDCA(unified []domain.UnifiedTransaction, timeline []domain.DcaPoint) *domain.DcaSummary {
	if len(timeline) == 0 {
		return nil
	}
	last := timeline[len(timeline)-1]
	prices := lo.Map(SpotBuys(unified), func(tx domain.UnifiedTransaction, _ int) decimal.Decimal {
		return tx.Price
	})

	summary := &domain.DcaSummary{
		NumBuys:       len(timeline),
		TotalInvested: last.TotalInvested,
		TotalQty:      last.TotalQty,
		AvgCost:       last.AvgCost,
		FirstBuyDate:  timeline[0].Date,
		LastBuyDate:   last.Date,
	}
	if len(prices) > 0 {
		summary.LowPrice = decimal.Min(prices[0], prices[1:]...)
		summary.HighPrice = decimal.Max(prices[0], prices[1:]...)
	}
	return summary
}

// ChartPoints reduces a timeline to one average-cost sample per second,
// keeping the last point of each second, sorted by time.
func ChartPoints(timeline []domain.DcaPoint) []domain.Kline {
	bySecond := make(map[int64]decimal.Decimal, len(timeline))
	for _, p := range timeline {
		bySecond[p.Date/1000] = p.AvgCost
	}
	points := lo.MapToSlice(bySecond, func(sec int64, avg decimal.Decimal) domain.Kline {
		return domain.Kline{Time: sec, Value: avg}
	})
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time < points[j].Time
	})
	return points
}
