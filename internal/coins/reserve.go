package coins

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

var ErrInvalidReserve = errors.New("invalid reserve state")

// Reserve is a machine's on-hand coin inventory. A valid reserve has exactly
// one non-negative entry per denomination.
type Reserve map[Coin]int64

// EmptyReserve returns a reserve with every denomination at zero.
func EmptyReserve() Reserve {
	r := make(Reserve, len(denominations))
	for _, d := range denominations {
		r[d] = 0
	}

	return r
}

// Validate checks the key set and the counts.
func (r Reserve) Validate() error {
	if len(r) != len(denominations) {
		return fmt.Errorf("%w: want %d denominations, got %d", ErrInvalidReserve, len(denominations), len(r))
	}

	for coin, n := range r {
		if !coin.Valid() {
			return fmt.Errorf("%w: unknown denomination %d", ErrInvalidReserve, coin)
		}

		if n < 0 {
			return fmt.Errorf("%w: negative count %d for %d", ErrInvalidReserve, n, coin)
		}
	}

	return nil
}

func (r Reserve) Clone() Reserve {
	return maps.Clone(r)
}

// Total returns Σ(denomination × count).
func (r Reserve) Total() int64 {
	return Change(r).Total()
}

// WithCoin returns a copy holding one more coin of c.
func (r Reserve) WithCoin(c Coin) (Reserve, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCoin, c)
	}

	out := r.Clone()
	out[c]++

	return out, nil
}

// Without returns a copy with the breakdown removed. If any count would go
// negative the receiver is left untouched and ErrNotEnoughChange is returned.
func (r Reserve) Without(change Change) (Reserve, error) {
	out := r.Clone()

	for coin, n := range change {
		if !coin.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCoin, coin)
		}

		out[coin] -= n
		if out[coin] < 0 {
			return nil, fmt.Errorf("remove %d x %d: %w", n, coin, ErrNotEnoughChange)
		}
	}

	return out, nil
}

// MarshalJSON writes the reserve as {"5":n,...}; used for the JSON column.
func (r Reserve) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[Coin]int64(r))
}

// UnmarshalJSON reads a stored reserve and rejects a key set that drifted.
func (r *Reserve) UnmarshalJSON(data []byte) error {
	var raw map[Coin]int64

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decode reserve: %w", err)
	}

	res := Reserve(raw)

	err = res.Validate()
	if err != nil {
		return err
	}

	*r = res

	return nil
}
