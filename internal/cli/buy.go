package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuyOptions struct {
	*RootOptions
	UserID    uint64
	ProductID uint64
	Quantity  int64
}

func NewBuyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy a product with the buyer's balance",
		Long: `Buy a product. The rest of the balance is paid out as change.

Example:
  vendctl buy --user 2 --product 1 --quantity 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				return runBuy(ctx, a, opts)
			})
		},
	}

	cmd.Flags().Uint64Var(&opts.UserID, "user", 0, "buyer id")
	cmd.Flags().Uint64Var(&opts.ProductID, "product", 0, "product id")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 1, "units to buy")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("product")

	return cmd
}

type buyOutput struct {
	Product    string           `json:"productName"`
	Quantity   int64            `json:"quantity"`
	TotalSpent int64            `json:"totalSpent"`
	Display    string           `json:"totalSpentDecimal"`
	Change     map[string]int64 `json:"change"`
}

func runBuy(ctx context.Context, a *app, opts *BuyOptions) error {
	res, err := a.engine.Purchase(ctx, opts.UserID, opts.ProductID, opts.Quantity)
	if err != nil {
		return engineError("buy", err)
	}

	out := buyOutput{
		Product:    res.ProductName,
		Quantity:   res.Quantity,
		TotalSpent: res.TotalSpent,
		Display:    money(res.TotalSpent),
		Change:     changeMap(res.Change),
	}

	return a.out.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "bought %d x %s for %s\n", out.Quantity, out.Product, out.Display)

		if res.Change.Count() == 0 {
			fmt.Fprintln(w, "no change")
			return
		}

		fmt.Fprintf(w, "change (%s):\n", money(res.Change.Total()))
		writeCoins(w, res.Change)
	})
}
