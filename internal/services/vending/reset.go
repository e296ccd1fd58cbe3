package vending

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/sqltx"
)

// Reset refunds the buyer's whole balance from the reserve. A zero balance
// succeeds without touching anything.
func (s *Service) Reset(ctx context.Context, userID uint64) (ResetResult, error) {
	res := ResetResult{Change: coins.Change{}}

	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		acc, err := s.requireBuyer(tx, userID)
		if err != nil {
			return err
		}

		if acc.Balance == 0 {
			return nil
		}

		reserve, err := s.ledger.SnapshotForUpdate(tx, s.machineID)
		if err != nil {
			return fmt.Errorf("lock reserve: %w", err)
		}

		change, err := coins.CalculateChange(reserve, acc.Balance)
		if err != nil {
			return err
		}

		_, err = s.ledger.RemoveCoins(tx, s.machineID, change)
		if err != nil {
			return fmt.Errorf("remove change: %w: %w", ErrInternal, err)
		}

		err = s.accounts.ResetBalance(tx, userID)
		if err != nil {
			return fmt.Errorf("reset balance: %w", err)
		}

		res.Change = change

		return nil
	})
	if err != nil {
		return ResetResult{}, s.classify(ctx, "reset", err)
	}

	s.logger.DebugContext(ctx, "reset", "user_id", userID, "refunded", res.Change.Total())

	return res, nil
}
