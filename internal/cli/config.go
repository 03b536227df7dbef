package cli

import (
	"fmt"
	"strconv"

	"wiserate/internal/config"
	"wiserate/internal/currency"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Init()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Setting", "Value"})
			table.Append([]string{"API URL", cfg.API.BaseURL})
			table.Append([]string{"Provider", cfg.API.Provider})
			table.Append([]string{"Data directory", cfg.DataDir})
			table.Append([]string{"Cache TTL", cfg.CacheTTL().String()})
			table.Append([]string{"Max requests/min", strconv.Itoa(cfg.RateLimit.RequestsPerMinute)})
			table.Append([]string{"Retry attempts", strconv.Itoa(cfg.RateLimit.MaxAttempts)})
			table.Append([]string{"Monitor interval", cfg.MonitorInterval().String()})
			table.Append([]string{"Log level", cfg.Logging.Level})
			table.Render()
			return nil
		},
	}
}

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List all supported currency codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Code", "Name"})
			for _, code := range currency.Codes() {
				table.Append([]string{code, currency.Name(code)})
			}
			table.Render()
			return nil
		},
	}
}

func newValidateCurrencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-currency CODE",
		Short: "Check whether a currency code is supported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := currency.ParseCode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is a valid currency code (%s)\n", code, currency.Name(code))
			return nil
		},
	}
}
