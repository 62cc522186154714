package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProduct_Priced(t *testing.T) {
	p := Product{Name: "Apple", PriceSEK: d("12.994")}.Priced()
	assert.True(t, d("12.99").Equal(p.PriceSEK))
	assert.True(t, d("1.21").Equal(p.PriceEUR))
	assert.True(t, d("1.30").Equal(p.PriceCHF))
}

func TestProduct_SameAs(t *testing.T) {
	a := Product{Name: "Apple", PriceSEK: d("12.99")}
	assert.True(t, a.SameAs(Product{Name: "Apple", PriceSEK: d("12.990"), Quantity: 7}))
	assert.False(t, a.SameAs(Product{Name: "Apple", PriceSEK: d("13")}))
	assert.False(t, a.SameAs(Product{Name: "apple", PriceSEK: d("12.99")}))
}

func TestNameMatch(t *testing.T) {
	assert.Equal(t, MatchExact, ParseNameMatch(" EXACT "))
	assert.Equal(t, MatchInsensitive, ParseNameMatch(""))
	assert.Equal(t, MatchInsensitive, ParseNameMatch("whatever"))

	assert.True(t, MatchInsensitive.Equal("Apple", " apple"))
	assert.False(t, MatchExact.Equal("Apple", "apple"))
	assert.True(t, MatchExact.Equal("Apple", "Apple"))
}

func TestSelection(t *testing.T) {
	apple := Product{Name: "Apple", PriceSEK: d("10.00")}
	milk := Product{Name: "Milk", PriceSEK: d("5.00")}

	s := NewSelection()
	assert.True(t, s.Empty())
	assert.False(t, s.Add(apple, 1))
	assert.False(t, s.Add(milk, 1))
	assert.True(t, s.Add(apple, 1))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Quantity(apple))
	assert.Zero(t, s.Quantity(Product{Name: "Bread", PriceSEK: d("24.00")}))
	assert.Equal(t, "Apple", s.Lines()[0].Product.Name, "first-pick order")
	assert.True(t, d("25.00").Equal(s.Total()))

	s.Clear()
	assert.True(t, s.Empty())
	assert.True(t, s.Total().IsZero())
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{ProductName: "A", Quantity: 2, Price: d("10.00")},
		{ProductName: "B", Quantity: 1, Price: d("5.00")},
	}
	assert.True(t, d("25.00").Equal(CartTotal(items)))
	assert.True(t, CartTotal(nil).IsZero())
}
