package domain

import "github.com/shopspring/decimal"

// Holding is a point-in-time valuation of one asset against the quote currency.
type Holding struct {
	Asset         string          `json:"asset"`
	Symbol        string          `json:"symbol"` // e.g. "BTCUSDT"
	Quantity      decimal.Decimal `json:"quantity"`
	AvgBuyCost    decimal.Decimal `json:"avgBuyCost"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnL"`
	PnLPercent    decimal.Decimal `json:"pnlPercent"`
}

// PortfolioData is the top-level portfolio view. Totals cover Holdings only.
type PortfolioData struct {
	Holdings          []Holding       `json:"holdings"`
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalCurrentValue decimal.Decimal `json:"totalCurrentValue"`
	TotalPnL          decimal.Decimal `json:"totalPnL"`
	TotalPnLPercent   decimal.Decimal `json:"totalPnLPercent"`
	QuoteAsset        string          `json:"quoteAsset"`
	QuoteBalance      decimal.Decimal `json:"quoteBalance"`
}

// DcaPoint is the state of the spot-buy accumulation after one buy.
type DcaPoint struct {
	Date          int64           `json:"date"`
	TotalQty      decimal.Decimal `json:"totalQty"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	AvgCost       decimal.Decimal `json:"avgCost"`
}

// DcaSummary condenses a DCA timeline for display.
type DcaSummary struct {
	NumBuys       int             `json:"numBuys"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	TotalQty      decimal.Decimal `json:"totalQty"`
	AvgCost       decimal.Decimal `json:"avgCost"`
	FirstBuyDate  int64           `json:"firstBuyDate"`
	LastBuyDate   int64           `json:"lastBuyDate"`
	LowPrice      decimal.Decimal `json:"lowPrice"`
	HighPrice     decimal.Decimal `json:"highPrice"`
}

// HoldingStats are descriptive aggregates over a unified transaction sequence.
type HoldingStats struct {
	TotalTransactions       int             `json:"totalTransactions"`
	TotalBuyTransactions    int             `json:"totalBuyTransactions"`
	TotalSellTransactions   int             `json:"totalSellTransactions"`
	TotalRewardTransactions int             `json:"totalRewardTransactions"`
	AvgBuyPrice             decimal.Decimal `json:"avgBuyPrice"`
	HighestBuyPrice         decimal.Decimal `json:"highestBuyPrice"`
	LowestBuyPrice          decimal.Decimal `json:"lowestBuyPrice"`
	TotalFeesPaid           decimal.Decimal `json:"totalFeesPaid"`
	TotalBought             decimal.Decimal `json:"totalBought"`
	TotalSold               decimal.Decimal `json:"totalSold"`
	TotalRewards            decimal.Decimal `json:"totalRewards"`
	TotalCostBasis          decimal.Decimal `json:"totalCostBasis"`
	FirstTradeDate          int64           `json:"firstTradeDate"`
	LastTradeDate           int64           `json:"lastTradeDate"`
}

// HoldingDetail is the per-asset drill-down.
type HoldingDetail struct {
	Holding      Holding              `json:"holding"`
	Transactions []UnifiedTransaction `json:"transactions"`
	Timeline     []DcaPoint           `json:"timeline"`
	Stats        HoldingStats         `json:"stats"`
	DCA          *DcaSummary          `json:"dca,omitempty"`
}
