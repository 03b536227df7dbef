package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"wiserate/internal/app"
	"wiserate/internal/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type exportedRate struct {
	Pair      string    `json:"pair"`
	Rate      string    `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
	Source    string    `json:"source"`
}

type exportedAlert struct {
	Pair          string     `json:"pair"`
	Threshold     string     `json:"threshold"`
	Direction     string     `json:"direction"`
	CreatedAt     time.Time  `json:"created_at"`
	LastTriggered *time.Time `json:"last_triggered_at,omitempty"`
}

type exportDocument struct {
	ExportedAt time.Time       `json:"exported_at"`
	Rates      []exportedRate  `json:"rates"`
	Alerts     []exportedAlert `json:"alerts"`
}

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export cached rates and alerts",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			doc := buildExport(a.Exchange.Snapshot(), a.Alerts.List(), time.Now().UTC())

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			case "csv":
				return writeExportCSV(cmd, doc)
			case "table":
				writeExportTables(cmd, doc)
				return nil
			}
			return fmt.Errorf("%w: format must be json, csv or table, got %q", domain.ErrValidation, format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv or table")
	return cmd
}

func buildExport(rates []domain.Rate, alerts []domain.Alert, now time.Time) exportDocument {
	doc := exportDocument{
		ExportedAt: now,
		Rates:      make([]exportedRate, 0, len(rates)),
		Alerts:     make([]exportedAlert, 0, len(alerts)),
	}
	for _, r := range rates {
		doc.Rates = append(doc.Rates, exportedRate{
			Pair:      r.Pair.Key(),
			Rate:      r.Value.String(),
			FetchedAt: r.FetchedAt,
			Source:    r.Provider,
		})
	}
	for _, al := range alerts {
		doc.Alerts = append(doc.Alerts, exportedAlert{
			Pair:          al.Pair.Key(),
			Threshold:     al.Threshold.String(),
			Direction:     string(al.Direction),
			CreatedAt:     al.CreatedAt,
			LastTriggered: al.LastTriggered,
		})
	}
	return doc
}

func writeExportCSV(cmd *cobra.Command, doc exportDocument) error {
	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write([]string{"type", "pair", "value", "direction", "timestamp"}); err != nil {
		return err
	}
	for _, r := range doc.Rates {
		if err := w.Write([]string{"rate", r.Pair, r.Rate, "", r.FetchedAt.Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	for _, al := range doc.Alerts {
		if err := w.Write([]string{"alert", al.Pair, al.Threshold, al.Direction, al.CreatedAt.Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeExportTables(cmd *cobra.Command, doc exportDocument) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Cached rates:")
	rates := tablewriter.NewWriter(out)
	rates.SetHeader([]string{"Pair", "Rate", "Fetched", "Source"})
	for _, r := range doc.Rates {
		rates.Append([]string{r.Pair, r.Rate, r.FetchedAt.Format("2006-01-02 15:04:05 MST"), r.Source})
	}
	rates.Render()

	fmt.Fprintln(out, "Alerts:")
	alerts := tablewriter.NewWriter(out)
	alerts.SetHeader([]string{"Pair", "Direction", "Threshold", "Created"})
	for _, al := range doc.Alerts {
		alerts.Append([]string{al.Pair, al.Direction, al.Threshold, al.CreatedAt.Format("2006-01-02 15:04:05 MST")})
	}
	alerts.Render()
}
