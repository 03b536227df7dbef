package cli

import (
	"fmt"

	"wiserate/internal/app"
	"wiserate/internal/currency"

	"github.com/spf13/cobra"
)

func newRateCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "rate SOURCE TARGET",
		Short: "Get the exchange rate for a currency pair",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pair, err := currency.ParsePair(args[0], args[1])
			if err != nil {
				return err
			}

			rate, err := a.Exchange.GetRate(cmd.Context(), pair, update)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rate)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&update, "update", "u", false, "bypass the cache and fetch a fresh rate")
	return cmd
}
