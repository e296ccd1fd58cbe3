package coins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, v := range []int64{5, 10, 20, 50, 100} {
		c, err := Parse(v)
		require.NoError(t, err)
		assert.Equal(t, Coin(v), c)
	}

	for _, v := range []int64{0, 1, 2, -5, 25, 200} {
		_, err := Parse(v)
		require.ErrorIs(t, err, ErrInvalidCoin, "value %d", v)
	}
}

func TestReserve_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, EmptyReserve().Validate())

	missing := EmptyReserve()
	delete(missing, Coin20)
	require.ErrorIs(t, missing.Validate(), ErrInvalidReserve)

	extra := EmptyReserve()
	delete(extra, Coin20)
	extra[Coin(25)] = 1
	require.ErrorIs(t, extra.Validate(), ErrInvalidReserve)

	negative := EmptyReserve()
	negative[Coin10] = -1
	require.ErrorIs(t, negative.Validate(), ErrInvalidReserve)
}

func TestReserve_WithCoin(t *testing.T) {
	t.Parallel()

	r := EmptyReserve()

	got, err := r.WithCoin(Coin50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got[Coin50])
	assert.Equal(t, int64(0), r[Coin50], "receiver must stay untouched")

	_, err = r.WithCoin(Coin(3))
	require.ErrorIs(t, err, ErrInvalidCoin)
}

func TestReserve_WithoutUnderflowIsAtomic(t *testing.T) {
	t.Parallel()

	r := reserveOf(3, 1, 0, 0, 0)

	_, err := r.Without(Change{Coin5: 1, Coin10: 2})
	require.ErrorIs(t, err, ErrNotEnoughChange)
	assert.Equal(t, reserveOf(3, 1, 0, 0, 0), r)
}

func TestReserve_JSONRoundTripRejectsDrift(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(reserveOf(1, 2, 3, 4, 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"5":1,"10":2,"20":3,"50":4,"100":5}`, string(raw))

	var decoded Reserve
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, int64(785), decoded.Total())

	err = json.Unmarshal([]byte(`{"5":1,"10":2}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidReserve)
}
