package machines

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/pgtestutil"
	"github.com/fastprodman/vendingmachine/internal/repos/machines"
	"github.com/google/uuid"
)

func TestLedger_DefaultMachineIsSeeded(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	reserve, err := New(db).Get(t.Context(), uuid.Nil)
	if err != nil {
		t.Fatalf("get default reserve: %v", err)
	}

	if reserve.Total() != 0 || len(reserve) != len(coins.Denominations()) {
		t.Fatalf("unexpected default reserve: %v", reserve)
	}
}

func TestLedger_AddAndRemove(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	ctx := t.Context()
	repo := New(db)
	machineID := uuid.New()

	err := repo.Ensure(ctx, machineID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// second call must not reset anything
	err = repo.Ensure(ctx, machineID)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}

	err = inTx(t, db, func(tx *sql.Tx) error {
		for _, c := range []coins.Coin{coins.Coin50, coins.Coin10, coins.Coin5, coins.Coin5} {
			_, err := repo.AddCoin(tx, machineID, c)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("add coins: %v", err)
	}

	err = inTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.AddCoin(tx, machineID, coins.Coin(25))
		return err
	})
	if !errors.Is(err, coins.ErrInvalidCoin) {
		t.Fatalf("expected ErrInvalidCoin, got: %v", err)
	}

	err = inTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.RemoveCoins(tx, machineID, coins.Change{coins.Coin5: 1, coins.Coin50: 2})
		return err
	})
	if !errors.Is(err, coins.ErrNotEnoughChange) {
		t.Fatalf("expected ErrNotEnoughChange, got: %v", err)
	}

	var after coins.Reserve

	err = inTx(t, db, func(tx *sql.Tx) error {
		var err error
		after, err = repo.RemoveCoins(tx, machineID, coins.Change{coins.Coin5: 2, coins.Coin10: 1})

		return err
	})
	if err != nil {
		t.Fatalf("remove coins: %v", err)
	}

	got, err := repo.Get(ctx, machineID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Total() != 50 || got[coins.Coin50] != 1 || after.Total() != 50 {
		t.Fatalf("unexpected reserve after removal: %v", got)
	}

	err = inTx(t, db, func(tx *sql.Tx) error {
		return repo.Reset(tx, machineID)
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, err = repo.Get(ctx, machineID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Total() != 0 {
		t.Fatalf("reserve after reset: %v", got)
	}
}

func TestLedger_ReplaceRejectsBadKeySet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	err := inTx(t, db, func(tx *sql.Tx) error {
		return repo.Replace(tx, uuid.Nil, coins.Reserve{coins.Coin5: 1})
	})
	if !errors.Is(err, coins.ErrInvalidReserve) {
		t.Fatalf("expected ErrInvalidReserve, got: %v", err)
	}

	err = inTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.SnapshotForUpdate(tx, uuid.New())
		return err
	})
	if !errors.Is(err, machines.ErrMachineNotFound) {
		t.Fatalf("expected ErrMachineNotFound, got: %v", err)
	}
}

func inTx(t *testing.T, db *sql.DB, fn func(*sql.Tx) error) error {
	t.Helper()

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
