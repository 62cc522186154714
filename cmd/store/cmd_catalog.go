package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/currency"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

// store convert <amount> <from> <to>
var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount between SEK, EUR and CHF",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		out, err := currency.Convert(amount, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), currency.Round(out, args[2]).StringFixed(2))
		return nil
	},
}

// store catalog …
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalogue",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with derived prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		products, err := k.Catalog.List(ctx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products in the catalogue.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tSEK\tEUR\tCHF\tSTOCK")
		fmt.Fprintln(w, "----\t---\t---\t---\t-----")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				p.Name, p.PriceSEK.StringFixed(2), p.PriceEUR.StringFixed(2), p.PriceCHF.StringFixed(2), p.Quantity)
		}
		return w.Flush()
	},
}

// productArgs parses <name> <price> <quantity>.
func productArgs(args []string) (models.Product, error) {
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q", args[1])
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid quantity %q", args[2])
	}
	return models.Product{Name: args[0], PriceSEK: price, Quantity: qty}, nil
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <name> <price-sek> <quantity>",
	Short: "Add a product",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := productArgs(args)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		added, err := k.Catalog.Add(ctx, p)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s: %s SEK / %s EUR / %s CHF\n",
			added.Name, added.PriceSEK.StringFixed(2), added.PriceEUR.StringFixed(2), added.PriceCHF.StringFixed(2))
		return nil
	},
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update <name> <price-sek> <quantity>",
	Short: "Update a product's price and stock",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := productArgs(args)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		updated, err := k.Catalog.Update(ctx, p)
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s: %s SEK, %d in stock\n", updated.Name, updated.PriceSEK.StringFixed(2), updated.Quantity)
		return nil
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		k, err := bootKernel(cmd)
		if err != nil {
			return err
		}
		defer k.Close(ctx)

		if err := k.Catalog.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd, catalogUpdateCmd, catalogDeleteCmd)
}
