package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTxTypeString(t *testing.T) {
	tests := []struct {
		typ  TxType
		want string
	}{
		{TxBuy, "buy"},
		{TxSell, "sell"},
		{TxReward, "reward"},
		{TxType(0), "TxType(0)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTxSourceValid(t *testing.T) {
	for _, s := range []TxSource{SourceSpot, SourceAutoInvest, SourceEarn} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TxSource(42).Valid() {
		t.Error("TxSource(42) should be invalid")
	}
}

func TestUnifiedTransactionJSON(t *testing.T) {
	tx := UnifiedTransaction{
		ID:          "auto-7",
		Date:        1700000000000,
		Type:        TxBuy,
		Source:      SourceAutoInvest,
		Price:       decimal.RequireFromString("35000"),
		Quantity:    decimal.RequireFromString("0.001"),
		QuoteAmount: decimal.RequireFromString("35"),
		Fee:         decimal.Zero,
		FeeAsset:    "USDT",
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["type"] != "buy" {
		t.Errorf("type = %v, want buy", raw["type"])
	}
	if raw["source"] != "auto-invest" {
		t.Errorf("source = %v, want auto-invest", raw["source"])
	}

	var back UnifiedTransaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Type != TxBuy || back.Source != SourceAutoInvest {
		t.Errorf("round trip = %s/%s, want buy/auto-invest", back.Type, back.Source)
	}
}

func TestInvalidTxTypeMarshal(t *testing.T) {
	if _, err := json.Marshal(UnifiedTransaction{}); err == nil {
		t.Error("expected error marshaling zero transaction type")
	}
}

func TestIsSpotBuy(t *testing.T) {
	if !(UnifiedTransaction{Type: TxBuy, Source: SourceSpot}).IsSpotBuy() {
		t.Error("spot buy not detected")
	}
	if (UnifiedTransaction{Type: TxBuy, Source: SourceAutoInvest}).IsSpotBuy() {
		t.Error("auto-invest buy reported as spot buy")
	}
	if (UnifiedTransaction{Type: TxSell, Source: SourceSpot}).IsSpotBuy() {
		t.Error("spot sell reported as spot buy")
	}
}
