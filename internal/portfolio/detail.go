package portfolio

import (
	"github.com/mtlprog/cexstat/internal/domain"
)

// Detail builds the drill-down of a valued holding from its raw history.
func (c *Calculator) Detail(
	holding domain.Holding,
	trades []domain.RawTrade,
	autoInvest []domain.RawAutoInvestTransaction,
	dividends []domain.RawDividend,
) domain.HoldingDetail {
	unified := Unify(holding.Asset, holding.Symbol, trades, autoInvest, dividends)
	timeline := DCATimeline(unified)

	return domain.HoldingDetail{
		Holding:      holding,
		Transactions: unified,
		Timeline:     timeline,
		Stats:        c.HoldingStats(unified),
		DCA:          SummarizeDCA(unified, timeline),
	}
}
