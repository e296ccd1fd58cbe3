package vending

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/sqltx"
)

// Deposit credits one coin to a buyer and adds it to the machine's reserve.
func (s *Service) Deposit(ctx context.Context, userID uint64, coin coins.Coin) (DepositResult, error) {
	var res DepositResult

	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		acc, err := s.requireBuyer(tx, userID)
		if err != nil {
			return err
		}

		if !coin.Valid() {
			return fmt.Errorf("%w: %d", coins.ErrInvalidCoin, coin)
		}

		err = s.accounts.Credit(tx, userID, int64(coin))
		if err != nil {
			return fmt.Errorf("credit account: %w", err)
		}

		_, err = s.ledger.AddCoin(tx, s.machineID, coin)
		if err != nil {
			return fmt.Errorf("add coin: %w", err)
		}

		res = DepositResult{
			AccountID: acc.ID,
			Role:      acc.Role,
			Balance:   acc.Balance + int64(coin),
		}

		return nil
	})
	if err != nil {
		return DepositResult{}, s.classify(ctx, "deposit", err)
	}

	s.logger.DebugContext(ctx, "deposit", "user_id", userID, "coin", int64(coin), "balance", res.Balance)

	return res, nil
}
