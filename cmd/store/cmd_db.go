package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/database/seeders"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/internal/kernel"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/migration"
)

var errNotSQL = errors.New("migrations apply to STORE_DRIVER=sql only")

// sqlRunner boots the kernel and returns a migration runner for its SQL backend.
func sqlRunner(cmd *cobra.Command) (*kernel.Kernel, *migration.Runner, error) {
	k, err := bootKernel(cmd)
	if err != nil {
		return nil, nil, err
	}
	if k.SQL == nil {
		_ = k.Close(cmd.Context())
		return nil, nil, errNotSQL
	}
	return k, migration.New(k.SQL, os.Stdout), nil
}

// store migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending SQL migrations, or ensure Mongo indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		switch {
		case k.SQL != nil:
			fmt.Println("Running migrations…")
			return migration.New(k.SQL, os.Stdout).Run()
		case k.Mongo != nil:
			fmt.Println("Ensuring indexes…")
			if err := repositories.EnsureIndexes(ctx, k.Mongo.DB, k.Match); err != nil {
				return err
			}
			fmt.Println("Indexes ready.")
			return nil
		default:
			fmt.Println("Nothing to migrate for the memory store.")
			return nil
		}
	},
}

// store migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, runner, err := sqlRunner(cmd)
		if err != nil {
			return err
		}
		defer k.Close(cmd.Context())
		fmt.Println("Rolling back last batch…")
		return runner.Rollback()
	},
}

// store migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each SQL migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, runner, err := sqlRunner(cmd)
		if err != nil {
			return err
		}
		defer k.Close(cmd.Context())
		return runner.Status()
	},
}

// store seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo customers and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		if k.SQL != nil {
			if err := migration.New(k.SQL, os.Stdout).Run(); err != nil {
				return err
			}
		}

		seeders.Hasher = k.Verifier.Hash
		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, k.Store, os.Stdout)
	},
}
