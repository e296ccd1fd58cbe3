package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fastprodman/vendingmachine/internal/config"
	"github.com/fastprodman/vendingmachine/internal/infra/logging"
	"github.com/fastprodman/vendingmachine/internal/infra/pgutils"
	"github.com/fastprodman/vendingmachine/internal/infra/sqliteutils"
	"github.com/fastprodman/vendingmachine/internal/services/catalog"
	"github.com/fastprodman/vendingmachine/internal/services/vending"
	"github.com/fastprodman/vendingmachine/pkg/shutdownqueue"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var setupLogging = logging.SetupText

// app is the wired engine for one command invocation.
type app struct {
	engine  *vending.Service
	catalog *catalog.Service
	out     *OutputFormatter
}

// withApp opens the selected backend, runs fn and closes everything again.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) (retErr error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	machineID, err := uuid.Parse(opts.MachineID)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --machine", err)
	}

	queue := shutdownqueue.New().WithLogger(slog.Default())

	defer func() {
		serr := queue.Shutdown(context.Background())
		if serr != nil && retErr == nil {
			retErr = serr
		}
	}()

	db, stores, err := openBackend(ctx, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}

	queue.Add("database", func(context.Context) error { return db.Close() })

	engine := vending.New(db, stores, machineID).WithLogger(slog.Default())

	err = engine.EnsureMachine(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "prepare machine", err)
	}

	return fn(ctx, &app{
		engine:  engine,
		catalog: catalog.New(db, stores.Accounts, stores.Products),
		out:     &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
	})
}

func openBackend(ctx context.Context, opts *RootOptions) (*sql.DB, vending.Stores, error) {
	if opts.PostgresDSN != "" {
		db, err := pgutils.OpenDB(ctx, config.PostgresConfig{DSN: opts.PostgresDSN, MaxOpenConns: 2})
		if err != nil {
			return nil, vending.Stores{}, fmt.Errorf("postgres: %w", err)
		}

		return db, vending.PostgresStores(db), nil
	}

	db, err := sqliteutils.Open(ctx, config.SQLiteConfig{Path: opts.SQLitePath})
	if err != nil {
		return nil, vending.Stores{}, fmt.Errorf("sqlite: %w", err)
	}

	return db, vending.SQLiteStores(db), nil
}
