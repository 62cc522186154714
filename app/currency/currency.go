// Package currency converts amounts between the store's currencies through a
// fixed rate table pivoting on SEK.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SEK = "SEK"
	EUR = "EUR"
	CHF = "CHF"

	// Base is the pivot currency; its rate is 1.
	Base = SEK
)

// ErrUnknownCurrency is returned for codes missing from the rate table.
var ErrUnknownCurrency = errors.New("currency: unknown currency")

// InvalidAmount is returned alongside ErrUnknownCurrency. Callers must check
// for it (or the error) before using a conversion result.
var InvalidAmount = decimal.NewFromInt(-1)

// rates holds how many units of each currency one SEK buys.
var rates = map[string]decimal.Decimal{
	SEK: decimal.NewFromInt(1),
	EUR: decimal.RequireFromString("0.093"),
	CHF: decimal.RequireFromString("0.10"),
}

// precision is the display precision per currency.
var precision = map[string]int32{
	SEK: 2,
	EUR: 2,
	CHF: 2,
}

// Supported lists the known currency codes, base first.
func Supported() []string { return []string{SEK, EUR, CHF} }

// IsSupported reports whether code is in the rate table.
func IsSupported(code string) bool {
	_, ok := rates[normalize(code)]
	return ok
}

// divPrecision is the scale kept when converting into the base currency.
const divPrecision = 28

// Convert converts amount from one currency to another. The result is not
// rounded; use Round for display.
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = normalize(from), normalize(to)

	fromRate, ok := rates[from]
	if !ok {
		return InvalidAmount, fmt.Errorf("%w: from %q", ErrUnknownCurrency, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return InvalidAmount, fmt.Errorf("%w: to %q", ErrUnknownCurrency, to)
	}

	if from == to {
		return amount, nil
	}

	inBase := amount
	if from != Base {
		inBase = amount.DivRound(fromRate, divPrecision)
	}
	return inBase.Mul(toRate), nil
}

// ToEUR converts amount in from to EUR.
func ToEUR(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return Convert(amount, from, EUR)
}

// ToCHF converts amount in from to CHF.
func ToCHF(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return Convert(amount, from, CHF)
}

// Round rounds amount to the display precision of code (2 for unknown codes).
func Round(amount decimal.Decimal, code string) decimal.Decimal {
	places, ok := precision[normalize(code)]
	if !ok {
		places = 2
	}
	return amount.Round(places)
}

// Derive computes the rounded EUR and CHF prices for a base-currency price.
func Derive(priceSEK decimal.Decimal) (eur, chf decimal.Decimal) {
	e, _ := Convert(priceSEK, SEK, EUR)
	c, _ := Convert(priceSEK, SEK, CHF)
	return Round(e, EUR), Round(c, CHF)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
