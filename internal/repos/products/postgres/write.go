package products

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

func (r *productsRepo) Create(ctx context.Context, p products.Product) (products.Product, error) {
	created, err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO products (seller_id, name, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, seller_id, name, price, stock
	`, p.SellerID, p.Name, p.Price, p.Stock))
	if err != nil {
		return products.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return created, nil
}

func (r *productsRepo) Update(tx *sql.Tx, p products.Product) error {
	res, err := tx.Exec(`
		UPDATE products
		SET name = $2, price = $3, stock = $4
		WHERE id = $1
	`, p.ID, p.Name, p.Price, p.Stock)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return requireAffected(res)
}

func (r *productsRepo) Delete(tx *sql.Tx, productID uint64) error {
	res, err := tx.Exec(`DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return products.ErrProductNotFound
	}

	return nil
}
