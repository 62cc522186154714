package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/controllers"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/config"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/internal/kernel"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/migration"
)

// store shop: the interactive console.
var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Start the interactive store console",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(context.Background())

		// SQL tables are created on first start, the way Mongo creates collections.
		if k.SQL != nil {
			if err := migration.New(k.SQL, io.Discard).Run(); err != nil {
				return err
			}
		}

		if addr := config.MetricsAddr(); addr != "" {
			srv := k.MetricsServer(addr)
			go serveMetrics(srv)
			defer shutdown(srv)
		}

		return controllers.NewConsole(consoleServices(k), os.Stdin, os.Stdout).Run(ctx)
	},
}

func consoleServices(k *kernel.Kernel) controllers.Services {
	return controllers.Services{
		Accounts: k.Accounts,
		Catalog:  k.Catalog,
		Carts:    k.Carts,
		Checkout: k.Checkout,
		Bus:      k.Bus,
	}
}

func serveMetrics(srv *http.Server) {
	logger.Info("metrics listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", "err", err)
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics shutdown", "err", err)
	}
}
