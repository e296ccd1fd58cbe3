package products

import (
	"errors"
	"testing"

	"github.com/fastprodman/vendingmachine/internal/infra/sqlitetestutil"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

func TestProducts_DecreaseStock(t *testing.T) {
	t.Parallel()

	db := sqlitetestutil.NewTestDB(t)
	repo := New(db)
	seller := sqlitetestutil.SeedUser(t, db, "seller", "seller", 0)
	id := sqlitetestutil.SeedProduct(t, db, seller, "cola", 85, 3)

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	p, err := repo.DecreaseStock(tx, id, 2)
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}

	if p.Stock != 1 || p.Name != "cola" {
		t.Fatalf("unexpected product after decrease: %+v", p)
	}

	_, err = repo.DecreaseStock(tx, id, 2)
	if !errors.Is(err, products.ErrNotEnoughProduct) {
		t.Fatalf("expected ErrNotEnoughProduct, got %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := repo.Get(t.Context(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Stock != 1 {
		t.Fatalf("stock: want 1, got %d", got.Stock)
	}
}

func TestProducts_WriteOps(t *testing.T) {
	t.Parallel()

	db := sqlitetestutil.NewTestDB(t)
	repo := New(db)
	seller := sqlitetestutil.SeedUser(t, db, "seller", "seller", 0)

	p, err := repo.Create(t.Context(), products.Product{SellerID: seller, Name: "gum", Price: 15, Stock: 9})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	p.Stock = 2

	if err := repo.Update(tx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := repo.Update(tx, products.Product{ID: 999, Name: "x", Price: 5}); !errors.Is(err, products.ErrProductNotFound) {
		t.Fatalf("update missing: expected ErrProductNotFound, got %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	list, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(list) != 1 || list[0] != p {
		t.Fatalf("list mismatch: %+v", list)
	}

	tx, err = db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	if err := repo.Delete(tx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := repo.Delete(tx, p.ID); !errors.Is(err, products.ErrProductNotFound) {
		t.Fatalf("second delete: expected ErrProductNotFound, got %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	_, err = repo.Get(t.Context(), p.ID)
	if !errors.Is(err, products.ErrProductNotFound) {
		t.Fatalf("get deleted: expected ErrProductNotFound, got %v", err)
	}
}
