package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/currency"
)

// Product is a catalogue entry. PriceSEK is authoritative; PriceEUR and
// PriceCHF are derived from it whenever the product is read or written.
type Product struct {
	Name     string          `json:"name"`
	PriceSEK decimal.Decimal `json:"price_sek"`
	PriceEUR decimal.Decimal `json:"price_eur"`
	PriceCHF decimal.Decimal `json:"price_chf"`
	Quantity int             `json:"quantity"`
}

// SameAs reports whether p and o are the same selection key: equal names and
// equal base prices.
func (p Product) SameAs(o Product) bool {
	return p.Name == o.Name && p.PriceSEK.Equal(o.PriceSEK)
}

// NameMatch is the policy for deciding whether two product names refer to
// the same product.
type NameMatch string

const (
	MatchExact       NameMatch = "exact"
	MatchInsensitive NameMatch = "insensitive"
)

// ParseNameMatch maps the PRODUCT_NAME_MATCH setting to a policy.
func ParseNameMatch(s string) NameMatch {
	if strings.EqualFold(strings.TrimSpace(s), string(MatchExact)) {
		return MatchExact
	}
	return MatchInsensitive
}

// Equal applies the policy to a and b.
func (m NameMatch) Equal(a, b string) bool {
	if m == MatchExact {
		return a == b
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Priced returns p with PriceEUR and PriceCHF recomputed from PriceSEK.
func (p Product) Priced() Product {
	p.PriceSEK = p.PriceSEK.Round(2)
	p.PriceEUR, p.PriceCHF = currency.Derive(p.PriceSEK)
	return p
}
