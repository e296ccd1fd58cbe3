// Package cli implements vendctl, an operator tool that drives the vending
// engine directly against a local SQLite file or a Postgres database.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	SQLitePath  string
	PostgresDSN string
	MachineID   string
	Format      string // "json" | "text"
	LogLevel    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the vendctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vendctl",
		Short: "Operate a vending machine from the command line",
		Long: `vendctl runs deposits, purchases and refunds against the vending engine.

By default it works on a local SQLite file; pass --pg-dsn to use Postgres.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			var level slog.Level

			err := level.UnmarshalText([]byte(opts.LogLevel))
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --log-level", err)
			}

			setupLogging(level)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "vending.db", "SQLite database file")
	cmd.PersistentFlags().StringVar(&opts.PostgresDSN, "pg-dsn", "", "Postgres DSN; overrides --sqlite")
	cmd.PersistentFlags().StringVar(&opts.MachineID, "machine", "00000000-0000-0000-0000-000000000000", "vending machine id")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "WARN", "log level (DEBUG|INFO|WARN|ERROR)")

	cmd.AddCommand(NewDepositCommand(opts))
	cmd.AddCommand(NewBuyCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewReserveCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
