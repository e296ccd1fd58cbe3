package accounts

import (
	"context"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/infra/pgutils"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

func (r *accountsRepo) Create(ctx context.Context, username string, role accounts.Role) (accounts.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, role)
		VALUES ($1, $2)
		RETURNING id, username, role, balance
	`, username, string(role)))
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return accounts.Account{}, accounts.ErrUsernameTaken
		}

		return accounts.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}
