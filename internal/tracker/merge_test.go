package tracker

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

func TestMergeBalancesSumsSpotAndEarn(t *testing.T) {
	spot := []domain.Balance{
		{Asset: "BTC", Free: "0.1", Locked: "0.05"},
		{Asset: "USDT", Free: "100", Locked: "0"},
	}
	earn := []domain.Balance{
		{Asset: "BTC", Free: "0.2", Locked: "0"},
		{Asset: "DOT", Free: "15", Locked: "0"},
	}

	merged := mergeBalances(spot, earn)

	if len(merged) != 3 {
		t.Fatalf("merged = %+v, want 3 entries", merged)
	}
	order := []string{"BTC", "USDT", "DOT"}
	for i, asset := range order {
		if merged[i].Asset != asset {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].Asset, asset)
		}
	}
	if !merged[0].Quantity().Equal(decimal.RequireFromString("0.35")) {
		t.Errorf("BTC quantity = %s, want 0.35", merged[0].Quantity())
	}
	if merged[0].Locked != "0.05" {
		t.Errorf("BTC locked = %s, want 0.05", merged[0].Locked)
	}
}

func TestMergeBalancesDropsZero(t *testing.T) {
	spot := []domain.Balance{{Asset: "XRP", Free: "0", Locked: "0"}}

	if merged := mergeBalances(spot, nil); len(merged) != 0 {
		t.Errorf("merged = %+v, want empty", merged)
	}
}

func TestTradedAssetsExcludesStable(t *testing.T) {
	balances := []domain.Balance{{Asset: "USDT"}, {Asset: "BTC"}, {Asset: "USDC"}, {Asset: "ETH"}}
	stable := map[string]bool{"USDT": true, "USDC": true}

	got := tradedAssets(balances, stable)
	if len(got) != 2 || got[0].Asset != "BTC" || got[1].Asset != "ETH" {
		t.Errorf("tradedAssets = %+v, want BTC, ETH", got)
	}
}
