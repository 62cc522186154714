package controllers

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

func (c *Console) inventory(ctx context.Context) error {
	for {
		c.println("\nInventory management:")
		c.println("1) List products")
		c.println("2) Add product")
		c.println("3) Update product")
		c.println("4) Delete product")
		c.println("5) Back")

		choice, err := c.prompt("\nSelect an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.listProducts(ctx)
		case "2":
			err = c.addProduct(ctx)
		case "3":
			err = c.updateProduct(ctx)
		case "4":
			err = c.deleteProduct(ctx)
		case "5":
			return nil
		default:
			c.println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) listProducts(ctx context.Context) {
	products, err := c.svc.Catalog.List(ctx)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	if len(products) == 0 {
		c.println("No products available in the store.")
		return
	}
	c.printProducts(products)
}

// readProduct prompts for the fields of p. Unparsable numbers come back as
// zero and are rejected by the catalogue's validation.
func (c *Console) readProduct() (models.Product, error) {
	name, err := c.promptRequired("Product name: ")
	if err != nil {
		return models.Product{}, err
	}
	rawPrice, err := c.prompt("Price (SEK): ")
	if err != nil {
		return models.Product{}, err
	}
	rawQty, err := c.prompt("Quantity in stock: ")
	if err != nil {
		return models.Product{}, err
	}

	price, perr := decimal.NewFromString(rawPrice)
	if perr != nil {
		price = decimal.Zero
	}
	qty, qerr := strconv.Atoi(rawQty)
	if qerr != nil {
		qty = -1
	}
	return models.Product{Name: name, PriceSEK: price, Quantity: qty}, nil
}

func (c *Console) addProduct(ctx context.Context) error {
	p, err := c.readProduct()
	if err != nil {
		return err
	}

	added, err := c.svc.Catalog.Add(ctx, p)
	if err != nil {
		c.fail(ctx, err)
		return nil
	}
	c.printf("%s added at %s SEK / %s EUR / %s CHF.\n",
		added.Name, money(added.PriceSEK), money(added.PriceEUR), money(added.PriceCHF))
	return nil
}

func (c *Console) updateProduct(ctx context.Context) error {
	p, err := c.readProduct()
	if err != nil {
		return err
	}

	updated, err := c.svc.Catalog.Update(ctx, p)
	if err != nil {
		c.fail(ctx, err)
		return nil
	}
	c.printf("%s updated: %s SEK, %d in stock.\n", updated.Name, money(updated.PriceSEK), updated.Quantity)
	return nil
}

func (c *Console) deleteProduct(ctx context.Context) error {
	name, err := c.promptRequired("Product name: ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Delete " + name + "? (y/n) ")
	if err != nil || !ok {
		return err
	}

	if err := c.svc.Catalog.Delete(ctx, name); err != nil {
		c.fail(ctx, err)
		return nil
	}
	c.printf("%s deleted.\n", name)
	return nil
}
