package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"wiserate/internal/app"
	"wiserate/internal/monitor"
	platformhttp "wiserate/internal/platform/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMonitorCmd() *cobra.Command {
	var intervalSec int
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Periodically check all alerts until interrupted",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			interval := a.Config.MonitorInterval()
			if intervalSec > 0 {
				interval = time.Duration(intervalSec) * time.Second
			}

			mon := monitor.NewMonitor(a.Alerts, monitor.LogNotifier{}, interval)
			if err := mon.Start(ctx); err != nil {
				return err
			}
			defer func() {
				if err := mon.Shutdown(); err != nil {
					logrus.Errorf("Monitor shutdown error: %v", err)
				}
			}()
			logrus.Infof("✅ Monitoring alerts every %s, Ctrl+C to stop", mon.Interval())

			addr := metricsAddr
			if addr == "" {
				addr = a.Config.Monitor.MetricsAddr
			}
			if addr != "" {
				return platformhttp.Start(ctx, addr, platformhttp.NewRouter())
			}

			<-ctx.Done()
			return nil
		}),
	}
	cmd.Flags().IntVar(&intervalSec, "interval", 0, "check interval in seconds (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	return cmd
}
