package sqlitetestutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fastprodman/vendingmachine/internal/config"
	"github.com/fastprodman/vendingmachine/internal/infra/sqliteutils"
)

// NewTestDB opens a fresh database file under t.TempDir with the schema
// applied and closes it when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vending.db")

	db, err := sqliteutils.Open(t.Context(), config.SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}

// SeedUser inserts a user row directly and returns its id.
func SeedUser(t *testing.T, db *sql.DB, username, role string, balance int64) uint64 {
	t.Helper()

	res, err := db.Exec(`INSERT INTO users (username, role, balance) VALUES (?, ?, ?)`, username, role, balance)
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}

	return uint64(id)
}

// SeedProduct inserts a product row directly and returns its id.
func SeedProduct(t *testing.T, db *sql.DB, sellerID uint64, name string, price, stock int64) uint64 {
	t.Helper()

	res, err := db.Exec(`INSERT INTO products (seller_id, name, price, stock) VALUES (?, ?, ?, ?)`,
		sellerID, name, price, stock)
	if err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed product id: %v", err)
	}

	return uint64(id)
}
