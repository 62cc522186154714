// Package controllers drives the store from a text console. The console owns
// the prompts; everything it does goes through app/services.
package controllers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/event"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/validate"
)

const banner = `
 _____________________
|                     |
|    WELCOME TO THE   |
|     SIMPLE STORE!   |
|_____________________|

 Here you can find the best products at the best prices in town!
 ---------------------------------------------------------------`

// Services is what the console needs from the kernel.
type Services struct {
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Checkout *services.Checkout
	Bus      *event.Bus
}

// Console is one interactive session over in/out.
type Console struct {
	svc Services
	in  *bufio.Scanner
	out io.Writer

	session *services.Session
}

// NewConsole reads commands from in and writes prompts to out.
func NewConsole(svc Services, in io.Reader, out io.Writer) *Console {
	c := &Console{svc: svc, in: bufio.NewScanner(in), out: out}

	svc.Bus.Listen(services.EventRowUpdated, func(payload interface{}) {
		if ev, ok := payload.(services.RowEvent); ok {
			c.printf("%s quantity updated in the saved cart (now %d).\n", ev.Product, ev.Quantity)
		}
	})
	svc.Bus.Listen(services.EventRowInserted, func(payload interface{}) {
		if ev, ok := payload.(services.RowEvent); ok {
			c.printf("%s added to the saved cart.\n", ev.Product)
		}
	})
	return c
}

// Run shows the menus until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.println(banner)

	for {
		var (
			more bool
			err  error
		)
		if c.session == nil {
			more, err = c.mainMenu(ctx)
		} else {
			more, err = c.customerMenu(c.session.Context(ctx))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (c *Console) mainMenu(ctx context.Context) (bool, error) {
	c.println("\nChoose an option:")
	c.println("1) Register new customer")
	c.println("2) Log in")
	c.println("3) Manage inventory")
	c.println("4) Exit")

	choice, err := c.prompt("\nSelect an option: ")
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		return true, c.register(ctx)
	case "2":
		return true, c.login(ctx)
	case "3":
		return true, c.inventory(ctx)
	case "4":
		c.println("Exiting the application...")
		return false, nil
	default:
		c.println("Invalid choice. Please try again.")
		return true, nil
	}
}

func (c *Console) customerMenu(ctx context.Context) (bool, error) {
	c.println("\nChoose an option:")
	c.println("1) Go shopping")
	c.println("2) Display your account information")
	c.println("3) View cart")
	c.println("4) Log out")

	choice, err := c.prompt("\nSelect an option: ")
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		return true, c.shop(ctx)
	case "2":
		return true, c.account(ctx)
	case "3":
		return true, c.viewCart(ctx)
	case "4":
		c.println("You have been logged out.")
		c.session = nil
		return true, nil
	default:
		c.println("Invalid choice. Please try again.")
		return true, nil
	}
}

// prompt writes label and returns the next trimmed input line.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// promptRequired repeats label until the answer is not blank.
func (c *Console) promptRequired(label string) (string, error) {
	for {
		v, err := c.prompt(label)
		if err != nil || v != "" {
			return v, err
		}
		c.println("A value is required.")
	}
}

func (c *Console) confirm(label string) (bool, error) {
	answer, err := c.prompt(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "1":
		return true, nil
	default:
		return false, nil
	}
}

// paymentConfirmer asks before any money moves.
func (c *Console) paymentConfirmer() services.Confirmer {
	return services.ConfirmFunc(func(_ context.Context, total decimal.Decimal) (bool, error) {
		c.printf("Total price: %s SEK\n", money(total))
		return c.confirm("Proceed with payment? (y/n) ")
	})
}

// fail reports err to the user. The console keeps running.
func (c *Console) fail(ctx context.Context, err error) {
	logger.WithCtx(ctx).Warn("console operation failed", "err", err)

	var verrs validate.Errors
	if errors.As(err, &verrs) {
		c.println("Error: " + verrs.Error())
		return
	}
	for _, known := range []error{
		services.ErrEmptySelection,
		services.ErrInvalidQuantity,
		services.ErrCustomerExists,
		services.ErrInvalidCredentials,
		services.ErrCustomerNotFound,
		services.ErrCartNotCleared,
		services.ErrSessionClosed,
		services.ErrProductExists,
		services.ErrProductNotFound,
	} {
		if errors.Is(err, known) {
			c.println("Error: " + known.Error() + ".")
			return
		}
	}
	c.println("Error: " + err.Error())
}

func (c *Console) println(s string) { _, _ = fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, args ...any) { _, _ = fmt.Fprintf(c.out, format, args...) }

func money(d decimal.Decimal) string { return d.StringFixed(2) }
