package domain

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	one      = decimal.NewFromInt(1)
	oneMilli = decimal.New(1, -3)
	oneCent  = decimal.New(1, -2)
)

// usdPegged quote assets are displayed as US dollars.
var usdPegged = map[string]bool{
	"USDT":  true,
	"USDC":  true,
	"BUSD":  true,
	"FDUSD": true,
	"TUSD":  true,
}

// FormatQuantity renders an asset quantity with magnitude-dependent precision:
// 4 decimals from 1 upwards, 6 from 0.001, 8 below that.
func FormatQuantity(q decimal.Decimal) string {
	abs := q.Abs()
	switch {
	case abs.GreaterThanOrEqual(one):
		return q.StringFixed(4)
	case abs.GreaterThanOrEqual(oneMilli):
		return q.StringFixed(6)
	default:
		return q.StringFixed(8)
	}
}

// FormatMoney renders an amount of the given currency with two decimals.
// Dollar-pegged stablecoins use the USD symbol; unknown codes fall back to "<amount> <code>".
func FormatMoney(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	if usdPegged[code] {
		code = "USD"
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Round(2).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// PricePrecision returns the number of decimals used to chart prices whose minimum is minPrice.
func PricePrecision(minPrice decimal.Decimal) int32 {
	switch {
	case minPrice.GreaterThanOrEqual(hundred):
		return 2
	case minPrice.GreaterThanOrEqual(one):
		return 4
	case minPrice.GreaterThanOrEqual(oneCent):
		return 6
	default:
		return 8
	}
}
