package domain

import "github.com/shopspring/decimal"

// Balance is a spot or earn balance as reported by the exchange.
type Balance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

// Quantity returns free + locked. Unparseable fields count as zero.
func (b Balance) Quantity() decimal.Decimal {
	return SafeParse(b.Free).Add(SafeParse(b.Locked))
}

// RawTrade is a single spot fill from GET /api/v3/myTrades.
type RawTrade struct {
	ID              int64  `json:"id"`
	Symbol          string `json:"symbol"`
	OrderID         int64  `json:"orderId"`
	Price           string `json:"price"`
	Qty             string `json:"qty"`
	QuoteQty        string `json:"quoteQty"`
	Commission      string `json:"commission"`
	CommissionAsset string `json:"commissionAsset"`
	Time            int64  `json:"time"`
	IsBuyer         bool   `json:"isBuyer"`
	IsMaker         bool   `json:"isMaker"`
	IsBestMatch     bool   `json:"isBestMatch"`
}

// AutoInvestStatusSuccess is the only auto-invest status that represents a completed purchase.
const AutoInvestStatusSuccess = "SUCCESS"

// RawAutoInvestTransaction is one execution of a recurring auto-invest plan.
type RawAutoInvestTransaction struct {
	ID                  int64  `json:"id"`
	TargetAsset         string `json:"targetAsset"`
	SourceAsset         string `json:"sourceAsset"`
	SourceAssetAmount   string `json:"sourceAssetAmount"`
	TargetAssetAmount   string `json:"targetAssetAmount"`
	ExecutionPrice      string `json:"executionPrice"`
	TransactionFee      string `json:"transactionFee"`
	TransactionFeeUnit  string `json:"transactionFeeUnit"`
	TransactionDateTime int64  `json:"transactionDateTime"`
	TransactionStatus   string `json:"transactionStatus"`
}

// IsSuccess reports whether the execution completed and counts as a buy.
func (t RawAutoInvestTransaction) IsSuccess() bool {
	return t.TransactionStatus == AutoInvestStatusSuccess
}

// RawDividend is an interest or reward distribution. It carries no price.
type RawDividend struct {
	ID      int64  `json:"id"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
	DivTime int64  `json:"divTime"`
	EnInfo  string `json:"enInfo,omitempty"`
}

// TickerPrice is the last traded price of a trading pair.
type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Kline is a close price sample for charting. Time is in seconds.
type Kline struct {
	Time  int64           `json:"time"`
	Value decimal.Decimal `json:"value"`
}
