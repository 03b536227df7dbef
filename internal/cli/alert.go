package cli

import (
	"fmt"

	"wiserate/internal/app"
	"wiserate/internal/currency"
	"wiserate/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	var below bool

	cmd := &cobra.Command{
		Use:   "alert SOURCE TARGET THRESHOLD",
		Short: "Set a threshold alert for a currency pair",
		Long:  "Set a threshold alert for a currency pair. Setting a new alert on a pair replaces the existing one.",
		Args:  cobra.ExactArgs(3),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pair, err := currency.ParsePair(args[0], args[1])
			if err != nil {
				return err
			}
			threshold, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("%w: threshold %q is not a number", domain.ErrValidation, args[2])
			}

			direction := domain.DirectionAbove
			if below {
				direction = domain.DirectionBelow
			}

			set, err := a.Alerts.Set(pair, threshold, direction)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Alert set: 1 %s %s %s %s\n",
				set.Pair.Source, set.Direction, set.Threshold, set.Pair.Target)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&below, "below", false, "trigger when the rate goes below the threshold")
	return cmd
}

func newRemoveAlertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-alert SOURCE TARGET",
		Short: "Remove the alert for a currency pair",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			pair, err := currency.ParsePair(args[0], args[1])
			if err != nil {
				return err
			}
			if err = a.Alerts.Remove(pair); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alert removed for %s\n", pair)
			return nil
		}),
	}
}
