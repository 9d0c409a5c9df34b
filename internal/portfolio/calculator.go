// Package portfolio is the cost-basis engine: it unifies exchange history,
// values holdings against a quote asset and summarizes them.
//
// Every function here is pure. Missing history for an asset is treated as
// no history; nothing in this package returns an error.
package portfolio

import "github.com/shopspring/decimal"

const (
	// DefaultQuoteAsset is the currency holdings are priced and settled in.
	DefaultQuoteAsset = "USDT"
)

// DefaultDustThreshold is the minimum current value a holding needs to be listed.
var DefaultDustThreshold = decimal.NewFromInt(1)

// Calculator holds the policy settings of the engine. It is immutable and safe
// for concurrent use.
type Calculator struct {
	quote         string
	dustThreshold decimal.Decimal
}

// NewCalculator creates a Calculator for the given quote asset and dust threshold.
func NewCalculator(quote string, dustThreshold decimal.Decimal) *Calculator {
	if quote == "" {
		quote = DefaultQuoteAsset
	}
	return &Calculator{quote: quote, dustThreshold: dustThreshold}
}

// DefaultCalculator prices in USDT and hides holdings worth 1 USDT or less.
func DefaultCalculator() *Calculator {
	return NewCalculator(DefaultQuoteAsset, DefaultDustThreshold)
}

// QuoteAsset returns the quote currency.
func (c *Calculator) QuoteAsset() string {
	return c.quote
}

// Symbol returns the trading pair of asset against the quote currency.
func (c *Calculator) Symbol(asset string) string {
	return asset + c.quote
}
