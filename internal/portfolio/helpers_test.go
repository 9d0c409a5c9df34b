package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// assertApprox compares after rounding to 8 decimal places.
func assertApprox(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Round(8).Equal(d(want).Round(8)) {
		t.Errorf("%s = %s, want ~%s", name, got, want)
	}
}
