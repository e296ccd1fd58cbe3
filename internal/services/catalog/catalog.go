// Package catalog covers everything around the engine that sellers and
// registration need: accounts and product listings.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/sqltx"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

var (
	ErrInvalidCost  = errors.New("invalid cost")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotSeller    = errors.New("only sellers manage products")
	ErrNotOwner     = errors.New("product belongs to another seller")
)

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	products products.Products
	logger   *slog.Logger
}

func New(db *sql.DB, accs accounts.Accounts, prods products.Products) *Service {
	return &Service{
		db:       db,
		accounts: accs,
		products: prods,
		logger:   slog.Default(),
	}
}

func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}

	return s
}

// RegisterUser creates an account with a zero balance.
func (s *Service) RegisterUser(ctx context.Context, username string, role string) (accounts.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return accounts.Account{}, fmt.Errorf("register user: %w: username required", ErrInvalidInput)
	}

	r, err := accounts.ParseRole(role)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("register user: %w", err)
	}

	acc, err := s.accounts.Create(ctx, username, r)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("register user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", acc.ID, "role", string(acc.Role))

	return acc, nil
}

func (s *Service) GetAccount(ctx context.Context, userID uint64) (accounts.Account, error) {
	acc, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]products.Product, error) {
	list, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return list, nil
}

func (s *Service) GetProduct(ctx context.Context, productID uint64) (products.Product, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return products.Product{}, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// ValidateCost accepts positive prices that the coin set can pay exactly.
func ValidateCost(cost int64) error {
	if cost <= 0 || cost%int64(coins.Smallest) != 0 {
		return fmt.Errorf("%w: %d must be a positive multiple of %d", ErrInvalidCost, cost, coins.Smallest)
	}

	return nil
}

func validateListing(name string, cost, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}

	if stock < 0 {
		return fmt.Errorf("%w: amount available must not be negative", ErrInvalidInput)
	}

	return ValidateCost(cost)
}

// CreateProduct lists a new product owned by sellerID.
func (s *Service) CreateProduct(ctx context.Context, sellerID uint64, name string, cost, stock int64) (products.Product, error) {
	err := validateListing(name, cost, stock)
	if err != nil {
		return products.Product{}, fmt.Errorf("create product: %w", err)
	}

	seller, err := s.accounts.Get(ctx, sellerID)
	if err != nil {
		return products.Product{}, fmt.Errorf("create product: %w", err)
	}

	if seller.Role != accounts.RoleSeller {
		return products.Product{}, fmt.Errorf("create product: %w", ErrNotSeller)
	}

	p, err := s.products.Create(ctx, products.Product{
		SellerID: sellerID,
		Name:     strings.TrimSpace(name),
		Price:    cost,
		Stock:    stock,
	})
	if err != nil {
		return products.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "seller_id", sellerID)

	return p, nil
}

// ProductPatch holds the fields an owner may change; nil leaves a field as is.
type ProductPatch struct {
	Name            *string
	Cost            *int64
	AmountAvailable *int64
}

// UpdateProduct applies patch under the product's row lock.
func (s *Service) UpdateProduct(ctx context.Context, sellerID, productID uint64, patch ProductPatch) (products.Product, error) {
	var updated products.Product

	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := s.ownedForUpdate(tx, sellerID, productID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}

		if patch.Cost != nil {
			p.Price = *patch.Cost
		}

		if patch.AmountAvailable != nil {
			p.Stock = *patch.AmountAvailable
		}

		err = validateListing(p.Name, p.Price, p.Stock)
		if err != nil {
			return err
		}

		err = s.products.Update(tx, p)
		if err != nil {
			return err
		}

		updated = p

		return nil
	})
	if err != nil {
		return products.Product{}, fmt.Errorf("update product: %w", err)
	}

	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, sellerID, productID uint64) error {
	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.ownedForUpdate(tx, sellerID, productID)
		if err != nil {
			return err
		}

		return s.products.Delete(tx, productID)
	})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", "product_id", productID, "seller_id", sellerID)

	return nil
}

func (s *Service) ownedForUpdate(tx *sql.Tx, sellerID, productID uint64) (products.Product, error) {
	p, err := s.products.GetForUpdate(tx, productID)
	if err != nil {
		return products.Product{}, err
	}

	if p.SellerID != sellerID {
		return products.Product{}, fmt.Errorf("%w: product %d", ErrNotOwner, productID)
	}

	return p, nil
}
