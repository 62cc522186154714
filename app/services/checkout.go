package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/currency"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

// Confirmer asks whether to pay total.
type Confirmer interface {
	Confirm(ctx context.Context, total decimal.Decimal) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, total decimal.Decimal) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, total decimal.Decimal) (bool, error) {
	return f(ctx, total)
}

// AlwaysConfirm pays without asking.
var AlwaysConfirm = ConfirmFunc(func(context.Context, decimal.Decimal) (bool, error) { return true, nil })

type ReceiptStatus int

const (
	NothingToPay ReceiptStatus = iota
	Cancelled
	Paid
	// Failed marks a checkout that returned an error before anything was
	// charged, or whose charge could not be recorded.
	Failed
)

func (s ReceiptStatus) String() string {
	switch s {
	case Cancelled:
		return "cancelled"
	case Paid:
		return "paid"
	case Failed:
		return "failed"
	default:
		return "nothing_to_pay"
	}
}

// Receipt is the outcome of a checkout.
type Receipt struct {
	Status     ReceiptStatus
	Customer   string
	Lines      []models.CartItem
	Total      decimal.Decimal // base currency
	TotalEUR   decimal.Decimal
	TotalCHF   decimal.Decimal
	TotalSpent decimal.Decimal // customer's spend after payment
	Tier       Tier
}

// Checkout pays selections and persisted carts.
type Checkout struct {
	customers repositories.CustomerRepository
	carts     repositories.CartRepository
}

func NewCheckout(customers repositories.CustomerRepository, carts repositories.CartRepository) *Checkout {
	return &Checkout{customers: customers, carts: carts}
}

// PaySelection pays sel for customer and empties it.
func (c *Checkout) PaySelection(ctx context.Context, customer string, sel *models.Selection, confirm Confirmer) (Receipt, error) {
	const op = "Checkout.PaySelection"

	var lines []models.CartItem
	if sel != nil {
		for _, l := range sel.Lines() {
			lines = append(lines, models.CartItem{
				CustomerName: customer,
				ProductName:  l.Product.Name,
				Quantity:     l.Quantity,
				Price:        l.Product.PriceSEK,
			})
		}
	}

	return c.pay(ctx, op, customer, lines, confirm, func(context.Context) error {
		sel.Clear()
		return nil
	})
}

// PayCart pays customer's persisted cart and deletes its rows.
func (c *Checkout) PayCart(ctx context.Context, customer string, confirm Confirmer) (Receipt, error) {
	const op = "Checkout.PayCart"

	rows, err := c.carts.FindByCustomer(ctx, customer)
	if err != nil {
		metrics.Checkouts.WithLabelValues(Failed.String()).Inc()
		return Receipt{Status: Failed, Customer: customer}, fmt.Errorf("%s: %w", op, err)
	}

	return c.pay(ctx, op, customer, rows, confirm, func(ctx context.Context) error {
		_, err := c.carts.DeleteAllForCustomer(ctx, customer)
		return err
	})
}

// PaySession pays the session's selection and closes the run.
func (c *Checkout) PaySession(ctx context.Context, sess *Session, confirm Confirmer) (Receipt, error) {
	if sess.State() != Selecting {
		return Receipt{Status: Failed, Customer: sess.Customer.Name}, ErrSessionClosed
	}

	r, err := c.PaySelection(sess.Context(ctx), sess.Customer.Name, sess.Selection(), confirm)
	if r.Status == Paid {
		sess.Customer.TotalSpent = r.TotalSpent
		sess.finish(PaidOut)
	}
	return r, err
}

func (c *Checkout) pay(
	ctx context.Context,
	op, customer string,
	lines []models.CartItem,
	confirm Confirmer,
	clear func(context.Context) error,
) (Receipt, error) {
	r := Receipt{Customer: customer, Lines: lines, Total: models.CartTotal(lines)}
	r.TotalEUR, r.TotalCHF = currency.Derive(r.Total)
	log := logger.WithCtx(ctx).With("op", op)

	if len(lines) == 0 || r.Total.IsZero() {
		metrics.Checkouts.WithLabelValues(NothingToPay.String()).Inc()
		return r, nil
	}

	ok, err := confirm.Confirm(ctx, r.Total)
	if err != nil {
		r.Status = Failed
		metrics.Checkouts.WithLabelValues(Failed.String()).Inc()
		return r, fmt.Errorf("%s: confirm: %w", op, err)
	}
	if !ok {
		r.Status = Cancelled
		metrics.Checkouts.WithLabelValues(Cancelled.String()).Inc()
		log.Info("checkout cancelled", "total", r.Total.String())
		return r, nil
	}

	spent, err := c.customers.AddSpend(ctx, customer, r.Total)
	if err != nil {
		r.Status = Failed
		metrics.Checkouts.WithLabelValues(Failed.String()).Inc()
		if errors.Is(err, repositories.ErrNotFound) {
			return r, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
		}
		return r, fmt.Errorf("%s: %w", op, err)
	}

	r.Status = Paid
	r.TotalSpent = spent
	r.Tier = TierFor(spent)
	metrics.Checkouts.WithLabelValues(Paid.String()).Inc()
	metrics.Revenue.Add(r.Total.InexactFloat64())
	log.Info("checkout paid", "total", r.Total.String(), "total_spent", spent.String())

	if err := clear(ctx); err != nil {
		log.Error("cart not cleared after payment", "err", err)
		return r, fmt.Errorf("%s: %w: %w", op, ErrCartNotCleared, err)
	}
	return r, nil
}
