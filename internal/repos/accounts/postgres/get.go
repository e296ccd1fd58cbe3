package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func (r *accountsRepo) Get(ctx context.Context, userID uint64) (accounts.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, `
		SELECT id, username, role, balance
		FROM users
		WHERE id = $1
	`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrUserNotFound
		}

		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}
