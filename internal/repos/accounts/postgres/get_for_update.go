package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func (r *accountsRepo) GetForUpdate(tx *sql.Tx, userID uint64) (accounts.Account, error) {
	acc, err := scanAccount(tx.QueryRow(`
		SELECT id, username, role, balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrUserNotFound
		}

		return accounts.Account{}, fmt.Errorf("lock/get account: %w", err)
	}

	return acc, nil
}
