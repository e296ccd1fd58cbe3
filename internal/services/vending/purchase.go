package vending

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/sqltx"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
)

// Purchase buys quantity units of a product with the buyer's whole balance.
// The remainder is paid out as change, so the buyer ends at zero. Locks are
// taken account, product, reserve; the change is computed before anything
// is written so a NotEnoughChange leaves every row untouched.
func (s *Service) Purchase(ctx context.Context, userID, productID uint64, quantity int64) (PurchaseResult, error) {
	var res PurchaseResult

	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		acc, err := s.requireBuyer(tx, userID)
		if err != nil {
			return err
		}

		if quantity <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
		}

		product, err := s.products.GetForUpdate(tx, productID)
		if err != nil {
			return err
		}

		if product.Stock < quantity {
			return fmt.Errorf("%w: want %d, have %d", products.ErrNotEnoughProduct, quantity, product.Stock)
		}

		if product.Price > 0 && quantity > math.MaxInt64/product.Price {
			return fmt.Errorf("%w: %d overflows the total", ErrInvalidQuantity, quantity)
		}

		total := product.Price * quantity
		if acc.Balance < total {
			return fmt.Errorf("%w: balance %d, total %d", accounts.ErrNotEnoughMoney, acc.Balance, total)
		}

		remainder := acc.Balance - total

		reserve, err := s.ledger.SnapshotForUpdate(tx, s.machineID)
		if err != nil {
			return fmt.Errorf("lock reserve: %w", err)
		}

		change, err := coins.CalculateChange(reserve, remainder)
		if err != nil {
			return err
		}

		_, err = s.products.DecreaseStock(tx, productID, quantity)
		if err != nil {
			return fmt.Errorf("decrease stock: %w", err)
		}

		err = s.accounts.Debit(tx, userID, total)
		if err != nil {
			return fmt.Errorf("debit account: %w", err)
		}

		_, err = s.ledger.RemoveCoins(tx, s.machineID, change)
		if err != nil {
			// the breakdown came from the locked snapshot
			return fmt.Errorf("remove change: %w: %w", ErrInternal, err)
		}

		if remainder > 0 {
			err = s.accounts.ResetBalance(tx, userID)
			if err != nil {
				return fmt.Errorf("pay out change: %w", err)
			}
		}

		res = PurchaseResult{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			TotalSpent:  total,
			Change:      change,
		}

		return nil
	})
	if err != nil {
		return PurchaseResult{}, s.classify(ctx, "purchase", err)
	}

	s.logger.DebugContext(ctx, "purchase",
		"user_id", userID,
		"product_id", productID,
		"quantity", quantity,
		"total", res.TotalSpent,
		"change", res.Change.Total(),
	)

	return res, nil
}
