package machines

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/google/uuid"
)

var ErrMachineNotFound = errors.New("vending machine not found")

// Ledger owns each machine's coin reserve. Every mutation must follow a
// SnapshotForUpdate in the same transaction so the reserve row is locked.
type Ledger interface {
	// Ensure creates an empty reserve for machineID if none exists.
	Ensure(ctx context.Context, machineID uuid.UUID) error
	Get(ctx context.Context, machineID uuid.UUID) (coins.Reserve, error)
	SnapshotForUpdate(tx *sql.Tx, machineID uuid.UUID) (coins.Reserve, error)
	Replace(tx *sql.Tx, machineID uuid.UUID, reserve coins.Reserve) error
	Reset(tx *sql.Tx, machineID uuid.UUID) error
	AddCoin(tx *sql.Tx, machineID uuid.UUID, coin coins.Coin) (coins.Reserve, error)
	RemoveCoins(tx *sql.Tx, machineID uuid.UUID, change coins.Change) (coins.Reserve, error)
}
