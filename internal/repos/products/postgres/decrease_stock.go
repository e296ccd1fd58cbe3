package products

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

func (r *productsRepo) DecreaseStock(tx *sql.Tx, productID uint64, amount int64) (products.Product, error) {
	p, err := scanProduct(tx.QueryRow(`
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1
		  AND stock >= $2
		RETURNING id, seller_id, name, price, stock
	`, productID, amount))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrNotEnoughProduct
		}

		return products.Product{}, fmt.Errorf("decrease stock: %w", err)
	}

	return p, nil
}
