package portfolio

import (
	"testing"

	"github.com/mtlprog/cexstat/internal/domain"
)

func TestDetail(t *testing.T) {
	c := DefaultCalculator()
	trades := []domain.RawTrade{
		{ID: 1, Price: "100", Qty: "1", QuoteQty: "100", Commission: "0.1", CommissionAsset: "USDT", Time: 1000, IsBuyer: true},
		{ID: 2, Price: "300", Qty: "1", QuoteQty: "300", Commission: "0.3", CommissionAsset: "USDT", Time: 2000, IsBuyer: true},
	}
	autoInvest := []domain.RawAutoInvestTransaction{
		{ID: 3, TargetAsset: "ETH", SourceAsset: "USDT", SourceAssetAmount: "200", TargetAssetAmount: "1", ExecutionPrice: "200", TransactionFeeUnit: "USDT", TransactionFee: "0", TransactionDateTime: 1500, TransactionStatus: "SUCCESS"},
	}
	dividends := []domain.RawDividend{
		{ID: 4, Asset: "ETH", Amount: "0.01", DivTime: 2500},
	}
	balance := domain.Balance{Asset: "ETH", Free: "3.01"}
	holding := c.CalculateHolding("ETH", "ETHUSDT", trades, autoInvest, d("250"), balance)

	detail := c.Detail(holding, trades, autoInvest, dividends)

	if detail.Holding != holding {
		t.Errorf("holding not passed through")
	}
	if len(detail.Transactions) != 4 {
		t.Fatalf("transactions = %d, want 4", len(detail.Transactions))
	}
	if detail.Transactions[0].Type != domain.TxReward {
		t.Errorf("newest transaction type = %s, want reward", detail.Transactions[0].Type)
	}

	// only spot buys feed the timeline
	if len(detail.Timeline) != 2 {
		t.Fatalf("timeline = %d points, want 2", len(detail.Timeline))
	}
	assertDecimal(t, "Timeline[1].AvgCost", detail.Timeline[1].AvgCost, "200")

	if detail.DCA == nil {
		t.Fatal("DCA summary missing")
	}
	if detail.DCA.NumBuys != 2 {
		t.Errorf("DCA.NumBuys = %d, want 2", detail.DCA.NumBuys)
	}
	if detail.Stats.TotalBuyTransactions != 3 || detail.Stats.TotalRewardTransactions != 1 {
		t.Errorf("stats buys/rewards = %d/%d, want 3/1",
			detail.Stats.TotalBuyTransactions, detail.Stats.TotalRewardTransactions)
	}
}

func TestDetailWithoutSpotBuys(t *testing.T) {
	c := DefaultCalculator()
	dividends := []domain.RawDividend{{ID: 1, Asset: "BNB", Amount: "0.2", DivTime: 100}}
	holding := domain.Holding{Asset: "BNB", Symbol: "BNBUSDT"}

	detail := c.Detail(holding, nil, nil, dividends)

	if len(detail.Timeline) != 0 {
		t.Errorf("timeline = %d points, want 0", len(detail.Timeline))
	}
	if detail.DCA != nil {
		t.Errorf("DCA = %+v, want nil", detail.DCA)
	}
}
