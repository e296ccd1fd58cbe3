package accounts

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func (r *accountsRepo) ResetBalance(tx *sql.Tx, userID uint64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = 0
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("reset balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrUserNotFound
	}

	return nil
}
