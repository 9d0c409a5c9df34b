package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1.0000"},
		{"12.345678", "12.3457"},
		{"0.5", "0.500000"},
		{"0.001", "0.001000"},
		{"0.00012345", "0.00012345"},
		{"0", "0.00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatQuantity(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("FormatQuantity(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"usdt as dollars", "1234.5", "USDT", "$1,234.50"},
		{"rounds to cents", "0.129", "USDC", "$0.13"},
		{"negative", "-40", "USDT", "-$40.00"},
		{"iso currency", "10", "USD", "$10.00"},
		{"unknown code", "3.14159", "XYZ", "3.14 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestPricePrecision(t *testing.T) {
	tests := []struct {
		input string
		want  int32
	}{
		{"65000", 2},
		{"100", 2},
		{"2.5", 4},
		{"0.05", 6},
		{"0.00001", 8},
	}

	for _, tt := range tests {
		if got := PricePrecision(decimal.RequireFromString(tt.input)); got != tt.want {
			t.Errorf("PricePrecision(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
