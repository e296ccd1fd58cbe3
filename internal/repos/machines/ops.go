package machines

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/google/uuid"
)

// snapshotReplacer is the storage-specific half of a Ledger.
type snapshotReplacer interface {
	SnapshotForUpdate(tx *sql.Tx, machineID uuid.UUID) (coins.Reserve, error)
	Replace(tx *sql.Tx, machineID uuid.UUID, reserve coins.Reserve) error
}

// AddCoin locks the reserve, adds one coin and writes it back. Backends
// delegate here so the arithmetic lives in one place.
func AddCoin(l snapshotReplacer, tx *sql.Tx, machineID uuid.UUID, coin coins.Coin) (coins.Reserve, error) {
	if !coin.Valid() {
		return nil, fmt.Errorf("add coin: %w: %d", coins.ErrInvalidCoin, coin)
	}

	current, err := l.SnapshotForUpdate(tx, machineID)
	if err != nil {
		return nil, err
	}

	next, err := current.WithCoin(coin)
	if err != nil {
		return nil, fmt.Errorf("add coin: %w", err)
	}

	err = l.Replace(tx, machineID, next)
	if err != nil {
		return nil, err
	}

	return next, nil
}

// RemoveCoins locks the reserve and removes change from it. On underflow
// nothing is written and coins.ErrNotEnoughChange is returned.
func RemoveCoins(l snapshotReplacer, tx *sql.Tx, machineID uuid.UUID, change coins.Change) (coins.Reserve, error) {
	current, err := l.SnapshotForUpdate(tx, machineID)
	if err != nil {
		return nil, err
	}

	next, err := current.Without(change)
	if err != nil {
		return nil, fmt.Errorf("remove coins: %w", err)
	}

	err = l.Replace(tx, machineID, next)
	if err != nil {
		return nil, err
	}

	return next, nil
}

// Reset zeroes every denomination.
func Reset(l snapshotReplacer, tx *sql.Tx, machineID uuid.UUID) error {
	_, err := l.SnapshotForUpdate(tx, machineID)
	if err != nil {
		return err
	}

	return l.Replace(tx, machineID, coins.EmptyReserve())
}

// EncodeReserve validates and serializes a reserve for storage.
func EncodeReserve(reserve coins.Reserve) ([]byte, error) {
	err := reserve.Validate()
	if err != nil {
		return nil, err
	}

	raw, err := reserve.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode reserve: %w", err)
	}

	return raw, nil
}
