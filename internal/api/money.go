package api

import (
	"strconv"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/shopspring/decimal"
)

// formatMinor renders minor units as a 2-decimal major-unit string.
func formatMinor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// changeJSON keys the breakdown by denomination and drops zero entries.
func changeJSON(c coins.Change) map[string]int64 {
	out := make(map[string]int64, len(c))
	for coin, n := range c {
		if n > 0 {
			out[strconv.FormatInt(int64(coin), 10)] = n
		}
	}

	return out
}

func reserveJSON(r coins.Reserve) map[string]int64 {
	out := make(map[string]int64, len(r))
	for coin, n := range r {
		out[strconv.FormatInt(int64(coin), 10)] = n
	}

	return out
}
