package models

import (
	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
)

// SelectionLine is one product picked during a shopping session.
type SelectionLine struct {
	Product  Product
	Quantity int
}

// Total is the line's base-currency cost.
func (l SelectionLine) Total() decimal.Decimal {
	return l.Product.PriceSEK.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Selection is the in-memory cart of one shopping session. Lines keep the
// order in which products were first picked.
type Selection struct {
	lines []SelectionLine
}

// NewSelection returns an empty selection.
func NewSelection() *Selection { return &Selection{} }

// Add increases the quantity of p by qty, creating the line on first use.
// It reports whether the product was already present.
func (s *Selection) Add(p Product, qty int) bool {
	for i := range s.lines {
		if s.lines[i].Product.SameAs(p) {
			s.lines[i].Quantity += qty
			return true
		}
	}
	s.lines = append(s.lines, SelectionLine{Product: p, Quantity: qty})
	return false
}

// Quantity returns how many units of p are selected.
func (s *Selection) Quantity(p Product) int {
	l, _ := collection.First(s.lines, func(l SelectionLine) bool { return l.Product.SameAs(p) })
	return l.Quantity
}

// Lines returns a copy of the selection lines.
func (s *Selection) Lines() []SelectionLine {
	return append([]SelectionLine(nil), s.lines...)
}

func (s *Selection) Len() int { return len(s.lines) }

func (s *Selection) Empty() bool { return len(s.lines) == 0 }

// Total is the sum of all line totals.
func (s *Selection) Total() decimal.Decimal {
	return collection.Reduce(s.lines, decimal.Zero, func(sum decimal.Decimal, l SelectionLine) decimal.Decimal {
		return sum.Add(l.Total())
	})
}

// Clear discards every line.
func (s *Selection) Clear() { s.lines = nil }
