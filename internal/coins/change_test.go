package coins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveOf(c5, c10, c20, c50, c100 int64) Reserve {
	return Reserve{Coin5: c5, Coin10: c10, Coin20: c20, Coin50: c50, Coin100: c100}
}

func TestCalculateChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reserve Reserve
		amount  int64
		want    Change
		wantErr error
	}{
		{
			name:    "greedy_mixed",
			reserve: reserveOf(2, 1, 0, 1, 0),
			amount:  65,
			want:    Change{Coin50: 1, Coin10: 1, Coin5: 1},
		},
		{
			name:    "empty_reserve_cannot_pay_five",
			reserve: reserveOf(0, 0, 0, 0, 0),
			amount:  5,
			wantErr: ErrNotEnoughChange,
		},
		{
			name:    "zero_amount_is_empty",
			reserve: reserveOf(0, 0, 0, 0, 0),
			amount:  0,
			want:    Change{},
		},
		{
			name:    "falls_back_to_smaller_coins",
			reserve: reserveOf(4, 0, 0, 0, 0),
			amount:  15,
			want:    Change{Coin5: 3},
		},
		{
			name:    "minimum_coin_count",
			reserve: reserveOf(5, 5, 5, 5, 5),
			amount:  185,
			want:    Change{Coin100: 1, Coin50: 1, Coin20: 1, Coin10: 1, Coin5: 1},
		},
		{
			name:    "not_a_multiple_of_five",
			reserve: reserveOf(10, 10, 10, 10, 10),
			amount:  7,
			wantErr: ErrNotEnoughChange,
		},
		{
			name:    "negative_amount",
			reserve: reserveOf(1, 1, 1, 1, 1),
			amount:  -5,
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			before := tt.reserve.Clone()

			got, err := CalculateChange(tt.reserve, tt.amount)
			assert.Equal(t, before, tt.reserve, "reserve must not be mutated")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, tt.amount, got.Total())
		})
	}
}

func TestCalculateChange_ApplyLeavesExactRemainder(t *testing.T) {
	t.Parallel()

	reserve := reserveOf(2, 1, 0, 1, 0)

	change, err := CalculateChange(reserve, 65)
	require.NoError(t, err)

	after, err := reserve.Without(change)
	require.NoError(t, err)
	assert.Equal(t, reserve.Total()-65, after.Total())
	assert.Equal(t, reserveOf(1, 0, 0, 0, 0), after)
}
