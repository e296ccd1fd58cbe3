package products

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

func (r *productsRepo) GetForUpdate(tx *sql.Tx, productID uint64) (products.Product, error) {
	p, err := scanProduct(tx.QueryRow(`
		SELECT id, seller_id, name, price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrProductNotFound
		}

		return products.Product{}, fmt.Errorf("lock/get product: %w", err)
	}

	return p, nil
}
