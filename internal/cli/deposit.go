package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/spf13/cobra"
)

type DepositOptions struct {
	*RootOptions
	UserID uint64
	Coins  []int64
}

func NewDepositCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DepositOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Insert coins for a buyer",
		Long: `Insert one or more coins for a buyer. Each coin is its own transaction.

Example:
  vendctl deposit --user 2 --coin 50 --coin 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				return runDeposit(ctx, a, opts)
			})
		},
	}

	cmd.Flags().Uint64Var(&opts.UserID, "user", 0, "buyer id")
	cmd.Flags().Int64SliceVar(&opts.Coins, "coin", nil, "coin value (5, 10, 20, 50, 100); repeatable")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("coin")

	return cmd
}

type depositOutput struct {
	UserID  uint64 `json:"userId"`
	Balance int64  `json:"balance"`
	Display string `json:"balanceDecimal"`
}

func runDeposit(ctx context.Context, a *app, opts *DepositOptions) error {
	var out depositOutput

	for _, raw := range opts.Coins {
		res, err := a.engine.Deposit(ctx, opts.UserID, coins.Coin(raw))
		if err != nil {
			return engineError(fmt.Sprintf("deposit %d", raw), err)
		}

		out = depositOutput{UserID: res.AccountID, Balance: res.Balance, Display: money(res.Balance)}
	}

	return a.out.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "user %d balance: %s\n", out.UserID, out.Display)
	})
}
