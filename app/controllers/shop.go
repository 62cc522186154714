package controllers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/currency"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
)

const shopPrompt = "\nEnter:\n" +
	"- the number of the product to add it to the cart (optionally followed by a quantity)\n" +
	"- 'pay' to finish shopping\n" +
	"- 'save' to save the cart for later\n" +
	"- 'back' to return to the menu\n> "

func (c *Console) shop(ctx context.Context) error {
	products, err := c.svc.Catalog.List(ctx)
	if err != nil {
		c.fail(ctx, err)
		return nil
	}
	if len(products) == 0 {
		c.println("No products available in the store.")
		return nil
	}

	c.printProducts(products)
	c.session.StartShopping()

	for {
		input, err := c.prompt(shopPrompt)
		if err != nil {
			return err
		}

		switch strings.ToLower(input) {
		case "back":
			c.session.Abandon()
			return nil

		case "save":
			_, err := c.svc.Carts.SaveSession(ctx, c.session)
			if errors.Is(err, services.ErrEmptySelection) {
				c.println("Cart is empty, nothing to save.")
				continue
			}
			if err != nil {
				c.fail(ctx, err)
				continue
			}
			c.println("Cart saved for later. Returning to main menu...")
			return nil

		case "pay":
			c.printSelection(c.session.Selection())
			r, err := c.svc.Checkout.PaySession(ctx, c.session, c.paymentConfirmer())
			if err != nil {
				c.fail(ctx, err)
			}
			c.printReceipt(r, err)
			if c.session.State() == services.PaidOut {
				return nil
			}

		default:
			p, qty, ok := pickProduct(products, input)
			if !ok {
				c.println("Invalid input. Please try again.")
				continue
			}
			before := c.session.Selection().Quantity(p)
			if err := c.session.Add(p, qty); err != nil {
				c.fail(ctx, err)
				continue
			}
			if before > 0 {
				c.printf("%s quantity increased in the cart.\n", p.Name)
			} else {
				c.printf("%s added to the cart.\n", p.Name)
			}
		}
	}
}

// pickProduct parses "<number> [quantity]" against the listed products.
func pickProduct(products []models.Product, input string) (models.Product, int, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 || len(fields) > 2 {
		return models.Product{}, 0, false
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(products) {
		return models.Product{}, 0, false
	}

	qty := 1
	if len(fields) == 2 {
		qty, err = strconv.Atoi(fields[1])
		if err != nil {
			return models.Product{}, 0, false
		}
	}
	return products[n-1], qty, true
}

func (c *Console) viewCart(ctx context.Context) error {
	items, err := c.svc.Carts.Items(ctx, c.session.Customer.Name)
	if err != nil {
		c.fail(ctx, err)
		return nil
	}
	if len(items) == 0 {
		c.println("Your cart is empty.")
		return nil
	}

	c.println("Your Cart:")
	for _, it := range items {
		c.printf("%s x %d - %s SEK\n", it.ProductName, it.Quantity, money(it.Total()))
	}
	c.printTotals(models.CartTotal(items))

	c.println("\nWould you like to pay for the items in your cart?")
	c.println("1) Yes, proceed to payment")
	c.println("2) No, return to the menu")
	choice, err := c.prompt("\nSelect an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		r, err := c.svc.Checkout.PayCart(ctx, c.session.Customer.Name, services.AlwaysConfirm)
		if err != nil {
			c.fail(ctx, err)
		}
		if r.Status == services.Paid {
			c.session.Customer.TotalSpent = r.TotalSpent
		}
		c.printReceipt(r, err)
	case "2":
		c.println("Returning to the menu...")
	default:
		c.println("Invalid choice. Please try again.")
	}
	return nil
}

func (c *Console) printProducts(products []models.Product) {
	c.println("\nAvailable products:")
	for i, p := range products {
		c.printf("%d. %s - %s SEK / %s EUR / %s CHF (%d in stock)\n",
			i+1, p.Name, money(p.PriceSEK), money(p.PriceEUR), money(p.PriceCHF), p.Quantity)
	}
}

func (c *Console) printSelection(sel *models.Selection) {
	if sel.Empty() {
		return
	}
	c.println("\nYour cart summary:")
	for _, l := range sel.Lines() {
		c.printf("%s x%d - %s SEK\n", l.Product.Name, l.Quantity, money(l.Total()))
	}
}

func (c *Console) printTotals(total decimal.Decimal) {
	eur, chf := currency.Derive(total)
	c.printf("Total: %s SEK / %s EUR / %s CHF\n", money(total), money(eur), money(chf))
}

// printReceipt reports r. A failed checkout has already been reported by fail,
// so only a payment that went through is printed alongside an error.
func (c *Console) printReceipt(r services.Receipt, err error) {
	if err != nil && r.Status != services.Paid {
		return
	}
	switch r.Status {
	case services.NothingToPay:
		c.println("Your cart is empty, nothing to pay.")
	case services.Cancelled:
		c.println("Payment canceled.")
	case services.Paid:
		c.printf("Payment of %s SEK successful!\n", money(r.Total))
		c.printf("Total spent for %s is now %s SEK (%s).\n", r.Customer, money(r.TotalSpent), r.Tier)
		c.println("Thank you for your purchase!")
	}
}
