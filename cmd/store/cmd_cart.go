package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
)

var (
	cartFileFlag   string
	cartStdoutFlag bool
)

// store cart …
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Move carts between the store and snapshot files",
}

var cartExportCmd = &cobra.Command{
	Use:   "export <customer>",
	Short: "Write a customer's cart as a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		customer := args[0]
		items, err := k.Carts.Items(ctx, customer)
		if err != nil {
			return err
		}
		data, err := repositories.EncodeSnapshot(items)
		if err != nil {
			return err
		}

		switch {
		case cartStdoutFlag:
			_, err = os.Stdout.Write(data)
			return err
		case cartFileFlag != "":
			if err := os.WriteFile(cartFileFlag, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Exported %d rows to %s\n", len(items), cartFileFlag)
		default:
			path := repositories.SnapshotPath(customer)
			if err := k.Disk.Put(ctx, path, data); err != nil {
				return err
			}
			fmt.Printf("Exported %d rows to %s\n", len(items), path)
		}
		return nil
	},
}

var cartImportCmd = &cobra.Command{
	Use:   "import <customer>",
	Short: "Merge a snapshot file into a customer's cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		customer := args[0]
		var data []byte
		if cartFileFlag != "" {
			data, err = os.ReadFile(cartFileFlag)
		} else {
			data, err = k.Disk.Get(ctx, repositories.SnapshotPath(customer))
		}
		if err != nil {
			return err
		}

		rows, skipped := repositories.DecodeSnapshot(customer, data)
		if skipped > 0 {
			fmt.Printf("Skipped %d malformed lines\n", skipped)
		}

		res, err := k.Carts.Consolidate(ctx, customer, services.SelectionFromRows(rows))
		if err != nil {
			return err
		}
		fmt.Printf("Imported cart for %s: %d inserted, %d updated\n", customer, res.Inserted, res.Updated)
		return nil
	},
}

func init() {
	cartExportCmd.Flags().StringVarP(&cartFileFlag, "file", "f", "", "Write to a local file instead of the storage disk")
	cartExportCmd.Flags().BoolVar(&cartStdoutFlag, "stdout", false, "Print the snapshot instead of storing it")
	cartImportCmd.Flags().StringVarP(&cartFileFlag, "file", "f", "", "Read from a local file instead of the storage disk")
	cartCmd.AddCommand(cartExportCmd, cartImportCmd)
}
