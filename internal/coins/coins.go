// Package coins holds the fixed denomination set, the coin reserve model and
// the greedy change calculator.
package coins

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Coin is a denomination value in minor currency units.
type Coin int64

const (
	Coin5   Coin = 5
	Coin10  Coin = 10
	Coin20  Coin = 20
	Coin50  Coin = 50
	Coin100 Coin = 100
)

// Smallest is the lowest denomination; every price is a multiple of it.
const Smallest = Coin5

var (
	ErrInvalidCoin     = errors.New("invalid coin")
	ErrNotEnoughChange = errors.New("not enough change")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// denominations is kept in descending order.
var denominations = []Coin{Coin100, Coin50, Coin20, Coin10, Coin5}

// Denominations returns the closed denomination set, largest first.
func Denominations() []Coin {
	return slices.Clone(denominations)
}

func (c Coin) Valid() bool {
	return slices.Contains(denominations, c)
}

// Parse converts a raw value into a Coin, rejecting anything outside the set.
func Parse(v int64) (Coin, error) {
	c := Coin(v)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCoin, v)
	}

	return c, nil
}

// Change is a denomination -> count breakdown. Zero entries are omitted.
type Change map[Coin]int64

// Total returns the value of the breakdown.
func (c Change) Total() int64 {
	var total int64
	for coin, n := range c {
		total += int64(coin) * n
	}

	return total
}

// Count returns the number of coins in the breakdown.
func (c Change) Count() int64 {
	var n int64
	for _, cnt := range c {
		n += cnt
	}

	return n
}

// Equal reports whether both breakdowns hold the same non-zero counts.
func (c Change) Equal(other Change) bool {
	return maps.Equal(c.compact(), other.compact())
}

func (c Change) compact() Change {
	out := make(Change, len(c))
	for coin, n := range c {
		if n != 0 {
			out[coin] = n
		}
	}

	return out
}
