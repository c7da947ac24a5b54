package httpserver

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyRoundsToCents(t *testing.T) {
	cases := map[string]string{
		"46.782": "46.78",
		"5.195":  "5.20",
		"99.855": "99.86",
		"12":     "12.00",
	}
	for in, want := range cases {
		if got := money(decimal.RequireFromString(in)); got != want {
			t.Fatalf("money(%s) = %s, want %s", in, got, want)
		}
	}
}
