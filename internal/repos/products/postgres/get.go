package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

func (r *productsRepo) Get(ctx context.Context, productID uint64) (products.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, seller_id, name, price, stock
		FROM products
		WHERE id = $1
	`, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrProductNotFound
		}

		return products.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

func (r *productsRepo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seller_id, name, price, stock
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []products.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		out = append(out, p)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return out, nil
}
