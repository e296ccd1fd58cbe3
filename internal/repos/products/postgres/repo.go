package products

import (
	"database/sql"

	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

var _ products.Products = (*productsRepo)(nil)

type productsRepo struct{ db *sql.DB }

func New(db *sql.DB) *productsRepo {
	return &productsRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (products.Product, error) {
	var p products.Product

	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Stock)
	if err != nil {
		return products.Product{}, err
	}

	return p, nil
}
