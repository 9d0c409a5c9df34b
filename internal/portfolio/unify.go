package portfolio

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// Unify merges spot trades, auto-invest executions and earn rewards of one
// asset into a single ledger ordered newest first. Entries with equal
// timestamps keep their input order.
//
// Auto-invest records that did not complete (status other than SUCCESS) are
// dropped here, so callers may pass unfiltered history.
func Unify(
	asset, symbol string,
	trades []domain.RawTrade,
	autoInvest []domain.RawAutoInvestTransaction,
	dividends []domain.RawDividend,
) []domain.UnifiedTransaction {
	unified := make([]domain.UnifiedTransaction, 0, len(trades)+len(autoInvest)+len(dividends))

	for _, t := range trades {
		unified = append(unified, fromTrade(t))
	}

	for _, tx := range lo.Filter(autoInvest, func(tx domain.RawAutoInvestTransaction, _ int) bool {
		return tx.IsSuccess()
	}) {
		unified = append(unified, fromAutoInvest(tx))
	}

	for _, d := range dividends {
		unified = append(unified, fromDividend(d))
	}

	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].Date > unified[j].Date
	})
	return unified
}

func fromTrade(t domain.RawTrade) domain.UnifiedTransaction {
	txType := domain.TxSell
	if t.IsBuyer {
		txType = domain.TxBuy
	}
	return domain.UnifiedTransaction{
		ID:          "spot-" + strconv.FormatInt(t.ID, 10),
		Date:        t.Time,
		Type:        txType,
		Source:      domain.SourceSpot,
		Price:       domain.SafeParse(t.Price),
		Quantity:    domain.SafeParse(t.Qty),
		QuoteAmount: domain.SafeParse(t.QuoteQty),
		Fee:         domain.SafeParse(t.Commission),
		FeeAsset:    t.CommissionAsset,
	}
}

func fromAutoInvest(tx domain.RawAutoInvestTransaction) domain.UnifiedTransaction {
	return domain.UnifiedTransaction{
		ID:          "auto-" + strconv.FormatInt(tx.ID, 10),
		Date:        tx.TransactionDateTime,
		Type:        domain.TxBuy,
		Source:      domain.SourceAutoInvest,
		Price:       domain.SafeParse(tx.ExecutionPrice),
		Quantity:    domain.SafeParse(tx.TargetAssetAmount),
		QuoteAmount: domain.SafeParse(tx.SourceAssetAmount),
		Fee:         domain.SafeParse(tx.TransactionFee),
		FeeAsset:    tx.TransactionFeeUnit,
	}
}

func fromDividend(d domain.RawDividend) domain.UnifiedTransaction {
	return domain.UnifiedTransaction{
		ID:          "earn-" + strconv.FormatInt(d.ID, 10),
		Date:        d.DivTime,
		Type:        domain.TxReward,
		Source:      domain.SourceEarn,
		Price:       decimal.Zero,
		Quantity:    domain.SafeParse(d.Amount),
		QuoteAmount: decimal.Zero,
		Fee:         decimal.Zero,
	}
}
