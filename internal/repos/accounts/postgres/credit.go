package accounts

import (
	"database/sql"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func (r *accountsRepo) Credit(tx *sql.Tx, userID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance + $2
		WHERE id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
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
