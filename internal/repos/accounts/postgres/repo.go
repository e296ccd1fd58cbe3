package accounts

import (
	"database/sql"

	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (accounts.Account, error) {
	var (
		acc  accounts.Account
		role string
	)

	err := row.Scan(&acc.ID, &acc.Username, &role, &acc.Balance)
	if err != nil {
		return accounts.Account{}, err
	}

	acc.Role = accounts.Role(role)

	return acc, nil
}
