package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func NewReserveCommand(rootOpts *RootOptions) *cobra.Command {
	var empty bool

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Show the machine's coin reserve",
		Long: `Show the machine's coin reserve. With --empty the reserve is zeroed first,
as when the machine is emptied by an operator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if empty {
					err := a.engine.EmptyReserve(ctx)
					if err != nil {
						return engineError("empty reserve", err)
					}
				}

				reserve, err := a.engine.Reserve(ctx)
				if err != nil {
					return engineError("reserve", err)
				}

				counts := make(map[string]int64, len(reserve))
				for c, n := range reserve {
					counts[strconv.FormatInt(int64(c), 10)] = n
				}

				return a.out.Success(map[string]any{
					"machineId":    a.engine.MachineID().String(),
					"coins":        counts,
					"total":        reserve.Total(),
					"totalDecimal": money(reserve.Total()),
				}, func(w io.Writer) {
					fmt.Fprintf(w, "machine %s holds %s\n", a.engine.MachineID(), money(reserve.Total()))
					writeCoins(w, reserve)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&empty, "empty", false, "zero the reserve before showing it")

	return cmd
}
