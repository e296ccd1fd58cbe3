package accounts

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/fastprodman/vendingmachine/internal/infra/sqlitetestutil"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func TestAccounts_BalanceOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		start       int64
		op          func(r *accountsRepo, tx *sql.Tx, id uint64) error
		wantBalance int64
		wantErr     error
	}{
		{
			name:        "credit",
			start:       10,
			op:          func(r *accountsRepo, tx *sql.Tx, id uint64) error { return r.Credit(tx, id, 50) },
			wantBalance: 60,
		},
		{
			name:        "debit_exact",
			start:       85,
			op:          func(r *accountsRepo, tx *sql.Tx, id uint64) error { return r.Debit(tx, id, 85) },
			wantBalance: 0,
		},
		{
			name:        "debit_short",
			start:       80,
			op:          func(r *accountsRepo, tx *sql.Tx, id uint64) error { return r.Debit(tx, id, 85) },
			wantBalance: 80,
			wantErr:     accounts.ErrNotEnoughMoney,
		},
		{
			name:        "reset",
			start:       120,
			op:          func(r *accountsRepo, tx *sql.Tx, id uint64) error { return r.ResetBalance(tx, id) },
			wantBalance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := sqlitetestutil.NewTestDB(t)
			repo := New(db)
			id := sqlitetestutil.SeedUser(t, db, "buyer", "buyer", tt.start)

			tx, err := db.BeginTx(t.Context(), nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}

			err = tt.op(repo, tx, id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				_ = tx.Rollback()
			} else {
				if err != nil {
					t.Fatalf("op: %v", err)
				}

				if err := tx.Commit(); err != nil {
					t.Fatalf("commit: %v", err)
				}
			}

			acc, err := repo.Get(t.Context(), id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}

			if acc.Balance != tt.wantBalance {
				t.Fatalf("balance: want %d, got %d", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAccounts_CreateAndLookup(t *testing.T) {
	t.Parallel()

	db := sqlitetestutil.NewTestDB(t)
	repo := New(db)

	acc, err := repo.Create(t.Context(), "sam", accounts.RoleSeller)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = repo.Create(t.Context(), "sam", accounts.RoleBuyer)
	if !errors.Is(err, accounts.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	locked, err := repo.GetForUpdate(tx, acc.ID)
	if err != nil {
		t.Fatalf("get for update: %v", err)
	}

	if locked != acc {
		t.Fatalf("want %+v, got %+v", acc, locked)
	}

	_, err = repo.GetForUpdate(tx, 31337)
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	err = repo.Credit(tx, 31337, 5)
	if !errors.Is(err, accounts.ErrUserNotFound) {
		t.Fatalf("credit: expected ErrUserNotFound, got %v", err)
	}
}
