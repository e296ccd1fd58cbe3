package products

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrNotEnoughProduct = errors.New("not enough product")
)

type Product struct {
	ID       uint64
	SellerID uint64
	Name     string
	Price    int64 // minor units, multiple of the smallest coin
	Stock    int64
}

// Products is the product store. Methods taking a *sql.Tx run inside the
// caller's transaction; GetForUpdate holds the row lock until it ends.
type Products interface {
	Get(ctx context.Context, productID uint64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	GetForUpdate(tx *sql.Tx, productID uint64) (Product, error)
	DecreaseStock(tx *sql.Tx, productID uint64, amount int64) (Product, error)
	Update(tx *sql.Tx, p Product) error
	Delete(tx *sql.Tx, productID uint64) error
}
