package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/vendingmachine/internal/infra/pgtestutil"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func TestAccounts_CreateAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, "alice", accounts.RoleSeller)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ID == 0 || created.Role != accounts.RoleSeller || created.Balance != 0 {
		t.Fatalf("unexpected account: %+v", created)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got != created {
		t.Fatalf("get mismatch: want %+v, got %+v", created, got)
	}

	_, err = repo.Create(ctx, "alice", accounts.RoleBuyer)
	if !errors.Is(err, accounts.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got: %v", err)
	}

	_, err = repo.Get(ctx, 424242)
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAccounts_CreditAndReset(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	userID := pgtestutil.SeedUser(t, db, "buyer", "buyer", 0)

	err := runTx(t, db, func(tx *sql.Tx) error {
		acc, err := repo.GetForUpdate(tx, userID)
		if err != nil {
			return err
		}

		if acc.Balance != 0 {
			t.Errorf("initial balance: %d", acc.Balance)
		}

		err = repo.Credit(tx, userID, 50)
		if err != nil {
			return err
		}

		return repo.Credit(tx, userID, 20)
	})
	if err != nil {
		t.Fatalf("credit tx: %v", err)
	}

	acc, err := repo.Get(t.Context(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if acc.Balance != 70 {
		t.Fatalf("balance after credit: want 70, got %d", acc.Balance)
	}

	err = runTx(t, db, func(tx *sql.Tx) error {
		return repo.ResetBalance(tx, userID)
	})
	if err != nil {
		t.Fatalf("reset tx: %v", err)
	}

	acc, err = repo.Get(t.Context(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if acc.Balance != 0 {
		t.Fatalf("balance after reset: want 0, got %d", acc.Balance)
	}

	err = runTx(t, db, func(tx *sql.Tx) error {
		return repo.Credit(tx, 777_777, 5)
	})
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("credit missing user: want ErrUserNotFound, got %v", err)
	}

	err = runTx(t, db, func(tx *sql.Tx) error {
		_, err := repo.GetForUpdate(tx, 777_777)
		return err
	})
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("lock missing user: want ErrUserNotFound, got %v", err)
	}
}
