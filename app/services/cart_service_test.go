package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/event"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

func selection(lines ...models.SelectionLine) *models.Selection {
	sel := models.NewSelection()
	for _, l := range lines {
		sel.Add(l.Product, l.Quantity)
	}
	return sel
}

func TestCartService_ConsolidateMergesAndInserts(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	require.NoError(t, store.Carts.Insert(ctx, models.CartItem{
		CustomerName: "Sara", ProductName: "Apple", Quantity: 2, Price: dec("12.99"),
	}))

	svc := NewCartService(store.Carts, models.MatchInsensitive, nil)
	res, err := svc.Consolidate(ctx, "Sara", selection(
		models.SelectionLine{Product: product("apple", "12.99"), Quantity: 3},
		models.SelectionLine{Product: product("Milk", "15.90"), Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, ConsolidateResult{Inserted: 1, Updated: 1}, res)

	rows, err := svc.Items(ctx, "Sara")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[0].ProductName, "stored name is kept")
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, "Milk", rows[1].ProductName)
	assert.Equal(t, 1, rows[1].Quantity)
	assertDecimal(t, "15.90", rows[1].Price)
}

func TestCartService_ConsolidateTwiceAccumulates(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newStore().Carts, models.MatchInsensitive, nil)
	sel := selection(models.SelectionLine{Product: product("Bread", "24.00"), Quantity: 2})

	_, err := svc.Consolidate(ctx, "Jimmy", sel)
	require.NoError(t, err)
	_, err = svc.Consolidate(ctx, "Jimmy", sel)
	require.NoError(t, err)

	rows, err := svc.Items(ctx, "Jimmy")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Quantity)
}

func TestCartService_RepeatedNameInOneSelectionYieldsOneRow(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newStore().Carts, models.MatchInsensitive, nil)

	// Different base prices make these two selection keys.
	res, err := svc.Consolidate(ctx, "Sara", selection(
		models.SelectionLine{Product: product("Apple", "12.99"), Quantity: 1},
		models.SelectionLine{Product: product("APPLE", "11.00"), Quantity: 2},
	))
	require.NoError(t, err)
	assert.Equal(t, ConsolidateResult{Inserted: 1, Updated: 1}, res)

	rows, err := svc.Items(ctx, "Sara")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
	assertDecimal(t, "12.99", rows[0].Price)
}

func TestCartService_ExactMatchKeepsCaseVariantsApart(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	require.NoError(t, store.Carts.Insert(ctx, models.CartItem{
		CustomerName: "Sara", ProductName: "Apple", Quantity: 1, Price: dec("12.99"),
	}))
	svc := NewCartService(store.Carts, models.MatchExact, nil)

	_, err := svc.Consolidate(ctx, "Sara", selection(models.SelectionLine{Product: product("apple", "12.99"), Quantity: 1}))
	require.NoError(t, err)

	rows, err := svc.Items(ctx, "Sara")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCartService_EmptySelectionTouchesNothing(t *testing.T) {
	carts := new(mockCarts)
	svc := NewCartService(carts, models.MatchInsensitive, nil)

	_, err := svc.Consolidate(context.Background(), "Sara", models.NewSelection())
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = svc.Consolidate(context.Background(), "Sara", nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	carts.AssertExpectations(t)
	carts.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything)
}

func TestCartService_InvalidQuantityRejectedBeforeWrites(t *testing.T) {
	carts := new(mockCarts)
	svc := NewCartService(carts, models.MatchInsensitive, nil)

	sel := models.NewSelection()
	sel.Add(product("Apple", "12.99"), 0)

	_, err := svc.Consolidate(context.Background(), "Sara", sel)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	carts.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything)
}

func TestCartService_WriteFailureStopsRun(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	carts := new(mockCarts)
	carts.On("FindByCustomer", ctx, "Sara").Return([]models.CartItem{}, nil)
	carts.On("Insert", ctx, mock.MatchedBy(func(it models.CartItem) bool { return it.ProductName == "Apple" })).Return(nil)
	carts.On("Insert", ctx, mock.MatchedBy(func(it models.CartItem) bool { return it.ProductName == "Milk" })).Return(boom)

	svc := NewCartService(carts, models.MatchInsensitive, nil)
	res, err := svc.Consolidate(ctx, "Sara", selection(
		models.SelectionLine{Product: product("Apple", "12.99"), Quantity: 1},
		models.SelectionLine{Product: product("Milk", "15.90"), Quantity: 1},
		models.SelectionLine{Product: product("Bread", "24.00"), Quantity: 1},
	))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ConsolidateResult{Inserted: 1}, res)
	carts.AssertExpectations(t)
	carts.AssertNumberOfCalls(t, "Insert", 2)
}

func TestCartService_FiresRowEventsAndCounts(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	require.NoError(t, store.Carts.Insert(ctx, models.CartItem{
		CustomerName: "Sara", ProductName: "Apple", Quantity: 1, Price: dec("12.99"),
	}))

	bus := event.NewBus()
	var got []string
	bus.Listen(EventRowUpdated, func(p interface{}) {
		e := p.(RowEvent)
		got = append(got, "updated:"+e.Product)
		assert.Equal(t, 3, e.Quantity)
		assert.Equal(t, 2, e.Added)
	})
	bus.Listen(EventRowInserted, func(p interface{}) { got = append(got, "inserted:"+p.(RowEvent).Product) })

	insertedBefore := testutil.ToFloat64(metrics.CartRows.WithLabelValues("inserted"))
	updatedBefore := testutil.ToFloat64(metrics.CartRows.WithLabelValues("updated"))

	svc := NewCartService(store.Carts, models.MatchInsensitive, bus)
	_, err := svc.Consolidate(ctx, "Sara", selection(
		models.SelectionLine{Product: product("Milk", "15.90"), Quantity: 1},
		models.SelectionLine{Product: product("Apple", "12.99"), Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"inserted:Milk", "updated:Apple"}, got)
	assert.Equal(t, insertedBefore+1, testutil.ToFloat64(metrics.CartRows.WithLabelValues("inserted")))
	assert.Equal(t, updatedBefore+1, testutil.ToFloat64(metrics.CartRows.WithLabelValues("updated")))
}

func TestCartService_SaveSession(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newStore().Carts, models.MatchInsensitive, nil)
	sess := NewSession(models.Customer{Name: "Sara"})

	_, err := svc.SaveSession(ctx, sess)
	assert.ErrorIs(t, err, ErrSessionClosed, "nothing started yet")

	sess.StartShopping()
	_, err = svc.SaveSession(ctx, sess)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, Selecting, sess.State())

	require.NoError(t, sess.Add(product("Apple", "12.99"), 2))
	res, err := svc.SaveSession(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, Saved, sess.State())

	assert.ErrorIs(t, sess.Add(product("Apple", "12.99"), 1), ErrSessionClosed)
}

func TestSelectionFromRows(t *testing.T) {
	sel := SelectionFromRows([]models.CartItem{
		{ProductName: "Apple", Quantity: 2, Price: dec("12.99")},
		{ProductName: "Milk", Quantity: 1, Price: dec("15.90")},
	})
	require.Equal(t, 2, sel.Len())
	assertDecimal(t, "41.88", sel.Total())
	assertDecimal(t, "1.21", sel.Lines()[0].Product.PriceEUR)
}
