package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/config"
)

var metricsAddrFlag string

// store metrics: serve /metrics and /healthz until interrupted.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Serve Prometheus metrics and a health check",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(context.Background())

		addr := metricsAddrFlag
		if addr == "" {
			addr = config.Get("METRICS_ADDR", ":9100")
		}

		srv := k.MetricsServer(addr)
		go serveMetrics(srv)
		fmt.Printf("Serving metrics on %s. Press Ctrl+C to stop.\n", addr)

		<-ctx.Done()
		shutdown(srv)
		fmt.Println("Metrics server stopped.")
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsAddrFlag, "addr", "", "Listen address (default METRICS_ADDR or :9100)")
}
