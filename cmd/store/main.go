package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/config"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/internal/kernel"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/database/migrations"
)

var driverFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "store",
	Short:         "Simple Store: a console grocery store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if driverFlag != "" {
			config.Set("STORE_DRIVER", driverFlag)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return shopCmd.RunE(cmd, args)
	},
}

// bootKernel connects the configured backends.
func bootKernel(cmd *cobra.Command) (*kernel.Kernel, error) {
	return kernel.Boot(cmd.Context())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Store backend: mongo, sql or memory (overrides STORE_DRIVER)")

	// Console
	rootCmd.AddCommand(shopCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Catalogue and carts
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(cartCmd)

	// Observability
	rootCmd.AddCommand(metricsCmd)
}
