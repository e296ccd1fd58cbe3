// Package accounts is the SQLite account store. Row locks do not exist in
// SQLite; the caller's transaction already holds the database write lock
// (BEGIN IMMEDIATE), so GetForUpdate is a plain read inside it.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/infra/sqliteutils"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

const selectAccount = `SELECT id, username, role, balance FROM users WHERE id = ?`

func scanAccount(row *sql.Row) (accounts.Account, error) {
	var (
		acc  accounts.Account
		role string
	)

	err := row.Scan(&acc.ID, &acc.Username, &role, &acc.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrUserNotFound
		}

		return accounts.Account{}, err
	}

	acc.Role = accounts.Role(role)

	return acc, nil
}

func (r *accountsRepo) Get(ctx context.Context, userID uint64) (accounts.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, selectAccount, userID))
	if err != nil {
		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

func (r *accountsRepo) GetForUpdate(tx *sql.Tx, userID uint64) (accounts.Account, error) {
	acc, err := scanAccount(tx.QueryRow(selectAccount, userID))
	if err != nil {
		return accounts.Account{}, fmt.Errorf("lock/get account: %w", err)
	}

	return acc, nil
}

func (r *accountsRepo) Create(ctx context.Context, username string, role accounts.Role) (accounts.Account, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, role) VALUES (?, ?)`, username, string(role))
	if err != nil {
		if sqliteutils.IsUniqueViolation(err) {
			return accounts.Account{}, accounts.ErrUsernameTaken
		}

		return accounts.Account{}, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return accounts.Account{}, fmt.Errorf("last insert id: %w", err)
	}

	return accounts.Account{ID: uint64(id), Username: username, Role: role}, nil
}

func (r *accountsRepo) Credit(tx *sql.Tx, userID uint64, amount int64) error {
	res, err := tx.Exec(`UPDATE users SET balance = balance + ? WHERE id = ?`, amount, userID)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	return requireAffected(res, accounts.ErrUserNotFound)
}

func (r *accountsRepo) Debit(tx *sql.Tx, userID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE users
		SET balance = balance - ?
		WHERE id = ?
		  AND balance >= ?
	`, amount, userID, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}

	return requireAffected(res, accounts.ErrNotEnoughMoney)
}

func (r *accountsRepo) ResetBalance(tx *sql.Tx, userID uint64) error {
	res, err := tx.Exec(`UPDATE users SET balance = 0 WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("reset balance: %w", err)
	}

	return requireAffected(res, accounts.ErrUserNotFound)
}

func requireAffected(res sql.Result, errNone error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return errNone
	}

	return nil
}
