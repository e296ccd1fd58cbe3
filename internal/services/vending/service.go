// Package vending is the transaction engine: Deposit, Purchase and Reset,
// each run as one scoped transaction over the account, product and coin
// ledger stores.
package vending

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/infra/sqltx"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
	pgaccounts "github.com/fastprodman/vendingmachine/internal/repos/accounts/postgres"
	sqliteaccounts "github.com/fastprodman/vendingmachine/internal/repos/accounts/sqlite"
	"github.com/fastprodman/vendingmachine/internal/repos/machines"
	pgmachines "github.com/fastprodman/vendingmachine/internal/repos/machines/postgres"
	sqlitemachines "github.com/fastprodman/vendingmachine/internal/repos/machines/sqlite"
	"github.com/fastprodman/vendingmachine/internal/repos/products"
	pgproducts "github.com/fastprodman/vendingmachine/internal/repos/products/postgres"
	sqliteproducts "github.com/fastprodman/vendingmachine/internal/repos/products/sqlite"
	"github.com/google/uuid"
)

// Stores groups the persistence contracts the engine depends on.
type Stores struct {
	Accounts accounts.Accounts
	Products products.Products
	Ledger   machines.Ledger
}

// PostgresStores wires the Postgres implementations over db.
func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Accounts: pgaccounts.New(db),
		Products: pgproducts.New(db),
		Ledger:   pgmachines.New(db),
	}
}

// SQLiteStores wires the SQLite implementations over db.
func SQLiteStores(db *sql.DB) Stores {
	return Stores{
		Accounts: sqliteaccounts.New(db),
		Products: sqliteproducts.New(db),
		Ledger:   sqlitemachines.New(db),
	}
}

type Service struct {
	db        *sql.DB
	accounts  accounts.Accounts
	products  products.Products
	ledger    machines.Ledger
	machineID uuid.UUID
	logger    *slog.Logger
}

// New builds the engine for one machine. db must be the handle the stores
// were built on so their transactional methods share its transactions.
func New(db *sql.DB, stores Stores, machineID uuid.UUID) *Service {
	return &Service{
		db:        db,
		accounts:  stores.Accounts,
		products:  stores.Products,
		ledger:    stores.Ledger,
		machineID: machineID,
		logger:    slog.Default(),
	}
}

// WithLogger replaces the logger; nil keeps the current one.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l.With("machine_id", s.machineID.String())
	}

	return s
}

func (s *Service) MachineID() uuid.UUID {
	return s.machineID
}

// EnsureMachine creates the machine's empty reserve if it is missing.
func (s *Service) EnsureMachine(ctx context.Context) error {
	err := s.ledger.Ensure(ctx, s.machineID)
	if err != nil {
		return fmt.Errorf("ensure machine: %w", err)
	}

	return nil
}

// Reserve returns the current coin reserve without locking it.
func (s *Service) Reserve(ctx context.Context) (coins.Reserve, error) {
	reserve, err := s.ledger.Get(ctx, s.machineID)
	if err != nil {
		return nil, s.classify(ctx, "get reserve", err)
	}

	return reserve, nil
}

// ReplaceReserve overwrites the reserve; used when a machine is refilled.
func (s *Service) ReplaceReserve(ctx context.Context, reserve coins.Reserve) error {
	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.ledger.SnapshotForUpdate(tx, s.machineID)
		if err != nil {
			return err
		}

		return s.ledger.Replace(tx, s.machineID, reserve)
	})
	if err != nil {
		return s.classify(ctx, "replace reserve", err)
	}

	s.logger.InfoContext(ctx, "reserve replaced", "total", reserve.Total())

	return nil
}

// EmptyReserve zeroes every denomination.
func (s *Service) EmptyReserve(ctx context.Context) error {
	err := sqltx.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.ledger.Reset(tx, s.machineID)
	})
	if err != nil {
		return s.classify(ctx, "empty reserve", err)
	}

	s.logger.InfoContext(ctx, "reserve emptied")

	return nil
}

// requireBuyer locks the actor's account and rejects anyone who is not a
// buyer. Every buyer operation starts here.
func (s *Service) requireBuyer(tx *sql.Tx, userID uint64) (accounts.Account, error) {
	acc, err := s.accounts.GetForUpdate(tx, userID)
	if err != nil {
		return accounts.Account{}, err
	}

	if acc.Role != accounts.RoleBuyer {
		return accounts.Account{}, fmt.Errorf("%w: user %d is a %s", ErrInvalidRole, userID, acc.Role)
	}

	return acc, nil
}
