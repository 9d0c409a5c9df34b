package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TxType classifies a unified transaction.
type TxType int

const (
	TxBuy TxType = iota + 1
	TxSell
	TxReward
)

var txTypeNames = map[TxType]string{
	TxBuy:    "buy",
	TxSell:   "sell",
	TxReward: "reward",
}

func (t TxType) String() string {
	if s, ok := txTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TxType(%d)", int(t))
}

// Valid reports whether t is one of the declared transaction types.
func (t TxType) Valid() bool {
	_, ok := txTypeNames[t]
	return ok
}

func (t TxType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid transaction type %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *TxType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for k, v := range txTypeNames {
		if v == s {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown transaction type %q", s)
}

// TxSource identifies which exchange product produced a transaction.
type TxSource int

const (
	SourceSpot TxSource = iota + 1
	SourceAutoInvest
	SourceEarn
)

var txSourceNames = map[TxSource]string{
	SourceSpot:       "spot",
	SourceAutoInvest: "auto-invest",
	SourceEarn:       "earn",
}

func (s TxSource) String() string {
	if name, ok := txSourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TxSource(%d)", int(s))
}

// Valid reports whether s is one of the declared sources.
func (s TxSource) Valid() bool {
	_, ok := txSourceNames[s]
	return ok
}

func (s TxSource) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid transaction source %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *TxSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for k, v := range txSourceNames {
		if v == str {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown transaction source %q", str)
}

// UnifiedTransaction is the canonical ledger entry built from trades,
// auto-invest executions and earn rewards.
type UnifiedTransaction struct {
	ID          string          `json:"id"`
	Date        int64           `json:"date"` // unix ms
	Type        TxType          `json:"type"`
	Source      TxSource        `json:"source"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	QuoteAmount decimal.Decimal `json:"quoteAmount"`
	Fee         decimal.Decimal `json:"fee"`
	FeeAsset    string          `json:"feeAsset"`
}

// IsSpotBuy reports whether the transaction is a buy fill on the spot market.
func (tx UnifiedTransaction) IsSpotBuy() bool {
	return tx.Source == SourceSpot && tx.Type == TxBuy
}
