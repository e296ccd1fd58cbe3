// Package machines is the SQLite coin ledger; the reserve is kept as a JSON
// document in a TEXT column.
package machines

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/repos/machines"
	"github.com/google/uuid"
)

var _ machines.Ledger = (*ledgerRepo)(nil)

type ledgerRepo struct{ db *sql.DB }

func New(db *sql.DB) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Ensure(ctx context.Context, machineID uuid.UUID) error {
	raw, err := machines.EncodeReserve(coins.EmptyReserve())
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR IGNORE INTO vending_machines (id, coins) VALUES (?, ?)`,
		machineID.String(), string(raw))
	if err != nil {
		return fmt.Errorf("ensure machine: %w", err)
	}

	return nil
}

func (r *ledgerRepo) Get(ctx context.Context, machineID uuid.UUID) (coins.Reserve, error) {
	reserve, err := scanReserve(r.db.QueryRowContext(ctx,
		`SELECT coins FROM vending_machines WHERE id = ?`, machineID.String()))
	if err != nil {
		return nil, fmt.Errorf("get reserve: %w", err)
	}

	return reserve, nil
}

func (r *ledgerRepo) SnapshotForUpdate(tx *sql.Tx, machineID uuid.UUID) (coins.Reserve, error) {
	reserve, err := scanReserve(tx.QueryRow(
		`SELECT coins FROM vending_machines WHERE id = ?`, machineID.String()))
	if err != nil {
		return nil, fmt.Errorf("lock/get reserve: %w", err)
	}

	return reserve, nil
}

func (r *ledgerRepo) Replace(tx *sql.Tx, machineID uuid.UUID, reserve coins.Reserve) error {
	raw, err := machines.EncodeReserve(reserve)
	if err != nil {
		return fmt.Errorf("replace reserve: %w", err)
	}

	res, err := tx.Exec(`UPDATE vending_machines SET coins = ? WHERE id = ?`, string(raw), machineID.String())
	if err != nil {
		return fmt.Errorf("replace reserve: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return machines.ErrMachineNotFound
	}

	return nil
}

func (r *ledgerRepo) Reset(tx *sql.Tx, machineID uuid.UUID) error {
	return machines.Reset(r, tx, machineID)
}

func (r *ledgerRepo) AddCoin(tx *sql.Tx, machineID uuid.UUID, coin coins.Coin) (coins.Reserve, error) {
	return machines.AddCoin(r, tx, machineID, coin)
}

func (r *ledgerRepo) RemoveCoins(tx *sql.Tx, machineID uuid.UUID, change coins.Change) (coins.Reserve, error) {
	return machines.RemoveCoins(r, tx, machineID, change)
}

func scanReserve(row *sql.Row) (coins.Reserve, error) {
	var raw string

	err := row.Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, machines.ErrMachineNotFound
		}

		return nil, err
	}

	var reserve coins.Reserve

	err = json.Unmarshal([]byte(raw), &reserve)
	if err != nil {
		return nil, err
	}

	return reserve, nil
}
