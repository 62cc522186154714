package services

import (
	"context"
	"fmt"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/event"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

// Events fired once per cart row written by Consolidate. The payload is a
// RowEvent.
const (
	EventRowUpdated  = "cart.row.updated"
	EventRowInserted = "cart.row.inserted"
)

// RowEvent describes one written cart row.
type RowEvent struct {
	Customer string
	Product  string
	Added    int // units from the selection
	Quantity int // row quantity after the write
}

// ConsolidateResult counts the rows a consolidation wrote.
type ConsolidateResult struct {
	Inserted int
	Updated  int
}

// CartService merges selections into the persisted cart.
type CartService struct {
	carts repositories.CartRepository
	match models.NameMatch
	bus   *event.Bus
}

// NewCartService builds the service. bus may be nil.
func NewCartService(carts repositories.CartRepository, match models.NameMatch, bus *event.Bus) *CartService {
	return &CartService{carts: carts, match: match, bus: bus}
}

// Consolidate adds sel to customer's persisted cart. A line whose product
// already has a row increases that row's quantity; any other line becomes a
// new row priced at the product's current base price. Rows are written in
// selection order and a failed write stops the run, leaving earlier writes
// in place.
func (s *CartService) Consolidate(ctx context.Context, customer string, sel *models.Selection) (ConsolidateResult, error) {
	const op = "CartService.Consolidate"

	var res ConsolidateResult
	if sel == nil || sel.Empty() {
		return res, ErrEmptySelection
	}

	lines := sel.Lines()
	for _, l := range lines {
		if l.Quantity < 1 {
			return res, fmt.Errorf("%s: %s: %w", op, l.Product.Name, ErrInvalidQuantity)
		}
	}

	rows, err := s.carts.FindByCustomer(ctx, customer)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.WithCtx(ctx).With("op", op)
	for _, l := range lines {
		i := collection.IndexOf(rows, func(r models.CartItem) bool {
			return s.match.Equal(r.ProductName, l.Product.Name)
		})

		if i >= 0 {
			rows[i].Quantity += l.Quantity
			if err := s.carts.Update(ctx, rows[i]); err != nil {
				return res, fmt.Errorf("%s: update %s: %w", op, rows[i].ProductName, err)
			}
			res.Updated++
			metrics.CartRows.WithLabelValues("updated").Inc()
			log.Debug("cart row updated", "product", rows[i].ProductName, "quantity", rows[i].Quantity)
			s.bus.Fire(EventRowUpdated, RowEvent{
				Customer: customer, Product: rows[i].ProductName, Added: l.Quantity, Quantity: rows[i].Quantity,
			})
			continue
		}

		item := models.CartItem{
			CustomerName: customer,
			ProductName:  l.Product.Name,
			Quantity:     l.Quantity,
			Price:        l.Product.PriceSEK,
		}
		if err := s.carts.Insert(ctx, item); err != nil {
			return res, fmt.Errorf("%s: insert %s: %w", op, item.ProductName, err)
		}
		rows = append(rows, item)
		res.Inserted++
		metrics.CartRows.WithLabelValues("inserted").Inc()
		log.Debug("cart row inserted", "product", item.ProductName, "quantity", item.Quantity)
		s.bus.Fire(EventRowInserted, RowEvent{
			Customer: customer, Product: item.ProductName, Added: l.Quantity, Quantity: item.Quantity,
		})
	}

	log.Info("cart saved", "inserted", res.Inserted, "updated", res.Updated)
	return res, nil
}

// SaveSession consolidates the session's selection and closes the run.
func (s *CartService) SaveSession(ctx context.Context, sess *Session) (ConsolidateResult, error) {
	if sess.State() != Selecting {
		return ConsolidateResult{}, ErrSessionClosed
	}
	res, err := s.Consolidate(sess.Context(ctx), sess.Customer.Name, sess.Selection())
	if err != nil {
		return res, err
	}
	sess.finish(Saved)
	return res, nil
}

// Items returns the customer's persisted cart rows.
func (s *CartService) Items(ctx context.Context, customer string) ([]models.CartItem, error) {
	const op = "CartService.Items"

	rows, err := s.carts.FindByCustomer(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// SelectionFromRows rebuilds a selection from cart rows, e.g. a loaded snapshot.
func SelectionFromRows(rows []models.CartItem) *models.Selection {
	sel := models.NewSelection()
	for _, r := range rows {
		sel.Add(models.Product{Name: r.ProductName, PriceSEK: r.Price}.Priced(), r.Quantity)
	}
	return sel
}
