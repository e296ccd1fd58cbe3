package coins

import "fmt"

// CalculateChange computes a greedy breakdown of amount from reserve.
//
// Denominations are walked largest first, taking as many coins as the reserve
// holds while the remaining amount still covers the denomination. The reserve
// is never mutated; the caller decides whether to apply the result. Greedy is
// exact for the canonical 5/10/20/50/100 set.
func CalculateChange(reserve Reserve, amount int64) (Change, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}

	working := reserve.Clone()
	change := make(Change)
	remaining := amount

	for _, d := range denominations {
		for remaining >= int64(d) && working[d] > 0 {
			working[d]--
			change[d]++
			remaining -= int64(d)
		}
	}

	if remaining > 0 {
		return nil, fmt.Errorf("change for %d short by %d: %w", amount, remaining, ErrNotEnoughChange)
	}

	return change, nil
}
