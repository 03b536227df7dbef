package cli

import (
	"fmt"

	"wiserate/internal/app"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newAlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List all configured alerts",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			alerts := a.Alerts.List()
			if len(alerts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No active alerts")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Pair", "Direction", "Threshold", "Created", "Last triggered"})
			for _, al := range alerts {
				lastTriggered := "never"
				if al.LastTriggered != nil {
					lastTriggered = al.LastTriggered.Format("2006-01-02 15:04:05 MST")
				}
				table.Append([]string{
					al.Pair.String(),
					string(al.Direction),
					al.Threshold.String(),
					al.CreatedAt.Format("2006-01-02 15:04:05 MST"),
					lastTriggered,
				})
			}
			table.Render()
			return nil
		}),
	}
}
