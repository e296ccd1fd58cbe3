package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type ResetOptions struct {
	*RootOptions
	UserID uint64
}

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Refund a buyer's whole balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				res, err := a.engine.Reset(ctx, opts.UserID)
				if err != nil {
					return engineError("reset", err)
				}

				refunded := res.Change.Total()

				return a.out.Success(map[string]any{
					"refunded":        refunded,
					"refundedDecimal": money(refunded),
					"change":          changeMap(res.Change),
				}, func(w io.Writer) {
					fmt.Fprintf(w, "refunded %s\n", money(refunded))
					writeCoins(w, res.Change)
				})
			})
		},
	}

	cmd.Flags().Uint64Var(&opts.UserID, "user", 0, "buyer id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
