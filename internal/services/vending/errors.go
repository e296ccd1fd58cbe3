package vending

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInternal marks a failure outside the domain taxonomy (store down,
	// serialization conflict, corrupted reserve). The cause stays wrapped.
	ErrInternal = errors.New("internal failure")
)

// domainErrors are returned to callers as-is.
var domainErrors = []error{
	coins.ErrInvalidCoin,
	coins.ErrNotEnoughChange,
	ErrInvalidRole,
	ErrInvalidQuantity,
	accounts.ErrUserNotFound,
	accounts.ErrNotEnoughMoney,
	products.ErrProductNotFound,
	products.ErrNotEnoughProduct,
}

// IsDomain reports whether err is one of the typed engine failures.
func IsDomain(err error) bool {
	if errors.Is(err, ErrInternal) {
		return false
	}

	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (s *Service) classify(ctx context.Context, op string, err error) error {
	if IsDomain(err) {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.ErrorContext(ctx, "vending operation failed", "op", op, "error", err)

	if errors.Is(err, ErrInternal) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
