package accounts

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fastprodman/vendingmachine/internal/infra/pgtestutil"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func TestAccounts_Debit_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		balance     int64
		missing     bool
		amount      int64
		wantBalance int64
		wantErr     error
	}{
		{name: "partial_debit", balance: 1_000, amount: 250, wantBalance: 750},
		{name: "exact_to_zero", balance: 300, amount: 300, wantBalance: 0},
		{name: "not_enough_money_unchanged", balance: 200, amount: 300, wantBalance: 200, wantErr: accounts.ErrNotEnoughMoney},
		{name: "user_missing", missing: true, amount: 100, wantErr: accounts.ErrNotEnoughMoney},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			userID := uint64(999_999)
			if !tt.missing {
				userID = pgtestutil.SeedUser(t, db, "buyer", "buyer", tt.balance)
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			err = repo.Debit(tx, userID, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got: %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("debit: %v", err)
				}

				err = tx.Commit()
				if err != nil {
					t.Fatalf("commit: %v", err)
				}
			}

			if tt.missing {
				return
			}

			acc, err := repo.Get(ctx, userID)
			if err != nil {
				t.Fatalf("get after debit: %v", err)
			}

			if acc.Balance != tt.wantBalance {
				t.Fatalf("final balance mismatch: want %d, got %d", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAccounts_Debit_ConcurrentGuard(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	userID := pgtestutil.SeedUser(t, db, "buyer", "buyer", 1_000)

	var (
		wg                 sync.WaitGroup
		mu                 sync.Mutex
		success, rejected  int
		workers, perWorker = 8, int64(300)
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := runTx(t, db, func(tx *sql.Tx) error {
				_, err := repo.GetForUpdate(tx, userID)
				if err != nil {
					return err
				}

				return repo.Debit(tx, userID, perWorker)
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				success++
			case errors.Is(err, accounts.ErrNotEnoughMoney):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if success != 3 || rejected != workers-3 {
		t.Fatalf("want 3 successes and %d rejections, got %d and %d", workers-3, success, rejected)
	}

	acc, err := repo.Get(t.Context(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if acc.Balance != 100 {
		t.Fatalf("final balance: want 100, got %d", acc.Balance)
	}
}

func runTx(t *testing.T, db *sql.DB, fn func(*sql.Tx) error) error {
	t.Helper()

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
