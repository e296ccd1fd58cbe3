// Package products is the SQLite product store. See the accounts SQLite
// store for how locking maps onto BEGIN IMMEDIATE.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

var _ products.Products = (*productsRepo)(nil)

type productsRepo struct{ db *sql.DB }

func New(db *sql.DB) *productsRepo {
	return &productsRepo{db: db}
}

const selectProduct = `SELECT id, seller_id, name, price, stock FROM products`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (products.Product, error) {
	var p products.Product

	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return products.Product{}, products.ErrProductNotFound
		}

		return products.Product{}, err
	}

	return p, nil
}

func (r *productsRepo) Get(ctx context.Context, productID uint64) (products.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, productID))
	if err != nil {
		return products.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

func (r *productsRepo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProduct+` ORDER BY id`)
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

func (r *productsRepo) Create(ctx context.Context, p products.Product) (products.Product, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (seller_id, name, price, stock)
		VALUES (?, ?, ?, ?)
	`, p.SellerID, p.Name, p.Price, p.Stock)
	if err != nil {
		return products.Product{}, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return products.Product{}, fmt.Errorf("last insert id: %w", err)
	}

	p.ID = uint64(id)

	return p, nil
}

func (r *productsRepo) GetForUpdate(tx *sql.Tx, productID uint64) (products.Product, error) {
	p, err := scanProduct(tx.QueryRow(selectProduct+` WHERE id = ?`, productID))
	if err != nil {
		return products.Product{}, fmt.Errorf("lock/get product: %w", err)
	}

	return p, nil
}

func (r *productsRepo) DecreaseStock(tx *sql.Tx, productID uint64, amount int64) (products.Product, error) {
	res, err := tx.Exec(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ?
		  AND stock >= ?
	`, amount, productID, amount)
	if err != nil {
		return products.Product{}, fmt.Errorf("decrease stock: %w", err)
	}

	err = requireAffected(res, products.ErrNotEnoughProduct)
	if err != nil {
		return products.Product{}, err
	}

	return r.GetForUpdate(tx, productID)
}

func (r *productsRepo) Update(tx *sql.Tx, p products.Product) error {
	res, err := tx.Exec(`UPDATE products SET name = ?, price = ?, stock = ? WHERE id = ?`,
		p.Name, p.Price, p.Stock, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return requireAffected(res, products.ErrProductNotFound)
}

func (r *productsRepo) Delete(tx *sql.Tx, productID uint64) error {
	res, err := tx.Exec(`DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return requireAffected(res, products.ErrProductNotFound)
}

func requireAffected(res sql.Result, errNone error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return errNone
	}

	return nil
}
