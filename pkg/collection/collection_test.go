package collection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type row struct {
	customer string
	product  string
	qty      int
}

var rows = []row{
	{"Sara", "Apple", 2},
	{"Jimmy", "Milk", 1},
	{"Sara", "Bread", 3},
}

func TestMap(t *testing.T) {
	names := Map(rows, func(r row) string { return r.product })
	assert.Equal(t, []string{"Apple", "Milk", "Bread"}, names)

	empty := Map([]row(nil), func(r row) string { return r.product })
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFilter(t *testing.T) {
	sara := Filter(rows, func(r row) bool { return r.customer == "Sara" })
	assert.Len(t, sara, 2)
	assert.Equal(t, "Bread", sara[1].product)

	sara[0].qty = 99
	assert.Equal(t, 2, rows[0].qty, "filtered slice is a copy")

	assert.Nil(t, Filter(rows, func(r row) bool { return r.customer == "Alessia" }))
}

func TestIndexOfAndFirst(t *testing.T) {
	byProduct := func(name string) func(row) bool {
		return func(r row) bool { return r.product == name }
	}

	assert.Equal(t, 1, IndexOf(rows, byProduct("Milk")))
	assert.Equal(t, -1, IndexOf(rows, byProduct("Cheese")))

	r, ok := First(rows, byProduct("Bread"))
	assert.True(t, ok)
	assert.Equal(t, 3, r.qty)

	_, ok = First(rows, byProduct("Cheese"))
	assert.False(t, ok)
}

func TestReduce(t *testing.T) {
	units := Reduce(rows, 0, func(acc int, r row) int { return acc + r.qty })
	assert.Equal(t, 6, units)

	total := Reduce([]string{"12.50", "0.40"}, decimal.Zero, func(acc decimal.Decimal, s string) decimal.Decimal {
		return acc.Add(decimal.RequireFromString(s))
	})
	assert.Equal(t, "12.9", total.String())
}
