package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/vendingmachine/internal/api"
	"github.com/fastprodman/vendingmachine/internal/infra/logging"
	"github.com/fastprodman/vendingmachine/internal/infra/pgutils"
	"github.com/fastprodman/vendingmachine/internal/services/catalog"
	"github.com/fastprodman/vendingmachine/internal/services/vending"
	"github.com/fastprodman/vendingmachine/pkg/envconf"
	"github.com/fastprodman/vendingmachine/pkg/shutdownqueue"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// a missing .env is fine; real deployments set the environment
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	queue := shutdownqueue.New().WithLogger(slog.Default())

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := queue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	queue.Add("postgres", func(context.Context) error {
		return db.Close()
	})

	stores := vending.PostgresStores(db)

	engine := vending.New(db, stores, cfg.Vending.MachineID).WithLogger(slog.Default())

	err = engine.EnsureMachine(ctx)
	if err != nil {
		return fmt.Errorf("ensure machine: %w", err)
	}

	cat := catalog.New(db, stores.Accounts, stores.Products)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, engine, cat, slog.Default())

	queue.Add("http server", func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "machine_id", engine.MachineID().String())

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
