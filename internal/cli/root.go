package cli

import (
	"wiserate/internal/app"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wiserate",
		Short:         "Monitor currency exchange rates and threshold alerts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newRateCmd(),
		newAlertCmd(),
		newRemoveAlertCmd(),
		newAlertsCmd(),
		newUpdateCmd(),
		newMonitorCmd(),
		newConfigCmd(),
		newCurrenciesCmd(),
		newValidateCurrencyCmd(),
		newExportCmd(),
	)
	return root
}

// withApp wires the full application for commands that need services.
func withApp(run func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
